package controllers

import (
	"context"
	"net/http"
	"strconv"

	"pingly_server/models"
	"pingly_server/utils"

	"github.com/gorilla/mux"
)

// HistoryStore reads persisted swipe decisions and conversations.
type HistoryStore interface {
	LoadMatch(ctx context.Context, owner, matchID string) (models.Match, error)
	DecisionHistory(ctx context.Context, owner string, limit int32) ([]models.SwipeDecision, error)
	ConversationHistory(ctx context.Context, matchID string, limit int32) ([]models.Message, error)
}

// HistoryController serves persisted history across sessions.
type HistoryController struct {
	Store HistoryStore
}

func NewHistoryController(store HistoryStore) *HistoryController {
	return &HistoryController{Store: store}
}

// GetDecisions returns the user's latest swipe decisions.
func (c *HistoryController) GetDecisions(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	decisions, err := c.Store.DecisionHistory(r.Context(), dashboardFrom(r).User().ID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, decisions)
}

// GetConversation returns the persisted messages of one of the user's matches.
func (c *HistoryController) GetConversation(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	matchID := mux.Vars(r)["matchId"]
	if _, err := c.Store.LoadMatch(r.Context(), dashboardFrom(r).User().ID, matchID); err != nil {
		writeServiceError(w, err)
		return
	}
	messages, err := c.Store.ConversationHistory(r.Context(), matchID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, messages)
}

// limitParam reads ?limit=, zero meaning no limit.
func limitParam(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		badRequest(w, "limit must be a non-negative integer")
		return 0, false
	}
	return int32(n), true
}
