package controllers

import (
	"log"
	"net/http"

	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/utils"
)

// DeckController exposes the swipe card stacks. Every handler takes ?mode=
// to pick the professional (default) or social deck.
type DeckController struct{}

func NewDeckController() *DeckController {
	return &DeckController{}
}

func (c *DeckController) deck(w http.ResponseWriter, r *http.Request) (*services.CardStack, bool) {
	mode, ok := modeParam(r)
	if !ok {
		badRequest(w, "mode must be professional or social")
		return nil, false
	}
	return dashboardFrom(r).Deck(mode), true
}

// GetDeck returns the queue, the top card and the gesture state.
func (c *DeckController) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := c.deck(w, r)
	if !ok {
		return
	}
	body := map[string]interface{}{
		"cards": deck.Cards(),
		"state": deck.State(),
		"empty": deck.Len() == 0,
	}
	if top, ok := deck.PeekTop(); ok {
		body["top"] = top
	}
	utils.WriteJSONResponse(w, http.StatusOK, body)
}

// Drag tracks a live drag and returns the indicator direction.
func (c *DeckController) Drag(w http.ResponseWriter, r *http.Request) {
	deck, ok := c.deck(w, r)
	if !ok {
		return
	}
	var payload struct {
		Offset float64 `json:"offset"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}
	direction := deck.Drag(payload.Offset)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"direction": direction,
		"state":     deck.State(),
	})
}

// Release ends a drag; past either threshold the top card is decided.
func (c *DeckController) Release(w http.ResponseWriter, r *http.Request) {
	deck, ok := c.deck(w, r)
	if !ok {
		return
	}
	var payload struct {
		Offset   float64 `json:"offset"`
		Velocity float64 `json:"velocity"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}
	decision := deck.Release(payload.Offset, payload.Velocity)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"changed":  decision != models.DecisionNone,
		"decision": decision,
		"state":    deck.State(),
	})
}

// Decide commits a like or pass on the top card immediately.
func (c *DeckController) Decide(w http.ResponseWriter, r *http.Request) {
	deck, decision, ok := c.decision(w, r)
	if !ok {
		return
	}
	candidate, changed := deck.CommitDecision(decision)
	log.Printf("👉 Decision %s committed: %v", decision, changed)
	writeChange(w, changed, "candidate", candidate)
}

// Trigger starts a button-driven exit; the decision commits once the settle
// delay passes.
func (c *DeckController) Trigger(w http.ResponseWriter, r *http.Request) {
	deck, decision, ok := c.decision(w, r)
	if !ok {
		return
	}
	task := deck.TriggerProgrammaticDecision(decision)
	utils.WriteJSONResponse(w, http.StatusAccepted, map[string]interface{}{
		"changed": task != nil,
		"state":   deck.State(),
	})
}

func (c *DeckController) decision(w http.ResponseWriter, r *http.Request) (*services.CardStack, models.Decision, bool) {
	deck, ok := c.deck(w, r)
	if !ok {
		return nil, models.DecisionNone, false
	}
	var payload struct {
		Decision models.Decision `json:"decision"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return nil, models.DecisionNone, false
	}
	if !payload.Decision.Valid() {
		badRequest(w, "decision must be like or pass")
		return nil, models.DecisionNone, false
	}
	return deck, payload.Decision, true
}
