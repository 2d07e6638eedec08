package controllers

import (
	"log"
	"net/http"
	"time"

	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/utils"

	"github.com/gorilla/mux"
)

// MatchController covers incoming requests, matches and their conversations.
type MatchController struct {
	Now func() time.Time
}

// NewMatchController creates a controller. A nil now uses time.Now.
func NewMatchController(now func() time.Time) *MatchController {
	if now == nil {
		now = time.Now
	}
	return &MatchController{Now: now}
}

type requestView struct {
	models.Request
	TimeAgo string `json:"timeAgo"`
}

type matchView struct {
	models.Match
	TimeAgo string `json:"timeAgo"`
}

type messageView struct {
	models.Message
	TimeAgo string `json:"timeAgo"`
}

// ListRequests returns pending requests; ?sort=recent orders them newest first.
func (c *MatchController) ListRequests(w http.ResponseWriter, r *http.Request) {
	pending := dashboardFrom(r).Ledger().ListPending()
	if r.URL.Query().Get("sort") == "recent" {
		pending = services.SortByRecency(pending)
	}
	now := c.Now()
	out := make([]requestView, 0, len(pending))
	for _, req := range pending {
		out = append(out, requestView{Request: req, TimeAgo: services.FormatRelativeTime(now, req.ReceivedAt)})
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// AcceptRequest turns a pending request into a match.
func (c *MatchController) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestId"]
	match, changed := dashboardFrom(r).AcceptRequest(requestID)
	if changed {
		log.Printf("💘 Request %s accepted, match %s", requestID, match.MatchID)
	}
	writeChange(w, changed, "match", match)
}

// DeclineRequest drops a pending request.
func (c *MatchController) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	changed := dashboardFrom(r).DeclineRequest(mux.Vars(r)["requestId"])
	writeChange(w, changed, "", nil)
}

// ListMatches returns confirmed matches, oldest first.
func (c *MatchController) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches := dashboardFrom(r).Ledger().Matches()
	now := c.Now()
	out := make([]matchView, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchView{Match: m, TimeAgo: services.FormatRelativeTime(now, m.CreatedAt)})
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// Celebration returns the match being celebrated, if any.
func (c *MatchController) Celebration(w http.ResponseWriter, r *http.Request) {
	match, ok := dashboardFrom(r).Ledger().Celebration()
	body := map[string]interface{}{"active": ok}
	if ok {
		body["match"] = match
		body["message"] = services.CelebrationMessage(match.Candidate.Name)
	}
	utils.WriteJSONResponse(w, http.StatusOK, body)
}

func (c *MatchController) DismissCelebration(w http.ResponseWriter, r *http.Request) {
	dashboardFrom(r).Ledger().DismissCelebration()
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"active": false})
}

// Unmatch removes a match and its conversation.
func (c *MatchController) Unmatch(w http.ResponseWriter, r *http.Request) {
	changed := dashboardFrom(r).Unmatch(mux.Vars(r)["matchId"])
	writeChange(w, changed, "", nil)
}

// GetMessages returns a conversation without marking it read.
func (c *MatchController) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := dashboardFrom(r).Messages(mux.Vars(r)["matchId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, c.messageViews(messages))
}

// OpenConversation marks the conversation as viewed and clears its unread count.
func (c *MatchController) OpenConversation(w http.ResponseWriter, r *http.Request) {
	match, messages, err := dashboardFrom(r).OpenConversation(mux.Vars(r)["matchId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"match":    match,
		"messages": c.messageViews(messages),
	})
}

// CloseConversation ends the view; pending auto-replies are cancelled.
func (c *MatchController) CloseConversation(w http.ResponseWriter, r *http.Request) {
	dashboardFrom(r).CloseConversation(mux.Vars(r)["matchId"])
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage appends the user's message and schedules the simulated reply.
func (c *MatchController) SendMessage(w http.ResponseWriter, r *http.Request) {
	c.appendMessage(w, r, (*services.Dashboard).SendMessage)
}

// ReceiveMessage appends a message delivered on behalf of the counterparty.
func (c *MatchController) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	c.appendMessage(w, r, (*services.Dashboard).ReceiveMessage)
}

func (c *MatchController) appendMessage(w http.ResponseWriter, r *http.Request,
	fn func(*services.Dashboard, string, string) (models.Message, bool, error)) {
	var payload struct {
		Body string `json:"body"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	msg, changed, err := fn(dashboardFrom(r), mux.Vars(r)["matchId"], payload.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "message", msg)
}

func (c *MatchController) messageViews(messages []models.Message) []messageView {
	now := c.Now()
	out := make([]messageView, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageView{Message: m, TimeAgo: services.FormatRelativeTime(now, m.CreatedAt)})
	}
	return out
}
