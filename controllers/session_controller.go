package controllers

import (
	"log"
	"net/http"

	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/utils"
)

// SessionController drives the login / registration / dashboard state machine.
type SessionController struct {
	Sessions *services.SessionService
}

// NewSessionController creates a new instance of SessionController
func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

// Start opens an anonymous session on the login screen.
func (c *SessionController) Start(w http.ResponseWriter, r *http.Request) {
	view, err := c.Sessions.Start()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, view)
}

// Current returns the session behind the bearer token.
func (c *SessionController) Current(w http.ResponseWriter, r *http.Request) {
	view, err := c.Sessions.View(utils.BearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, view)
}

func (c *SessionController) BeginSignup(w http.ResponseWriter, r *http.Request) {
	view, changed, err := c.Sessions.BeginSignup(utils.BearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "session", view)
}

func (c *SessionController) CancelSignup(w http.ResponseWriter, r *http.Request) {
	view, changed, err := c.Sessions.CancelSignup(utils.BearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "session", view)
}

// Register creates an account and enters the dashboard.
func (c *SessionController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegistrationInput
	if err := utils.DecodeJSONBody(r, &input); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}

	view, err := c.Sessions.Register(utils.BearerToken(r), input)
	if err != nil {
		log.Printf("❌ Registration failed: %v", err)
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, view)
}

// Login checks credentials and enters the dashboard.
func (c *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}

	view, err := c.Sessions.Login(utils.BearerToken(r), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, view)
}

func (c *SessionController) SignOut(w http.ResponseWriter, r *http.Request) {
	view, err := c.Sessions.SignOut(utils.BearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, view)
}

// SetMode switches between the professional and social dashboards.
func (c *SessionController) SetMode(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mode models.Mode `json:"mode"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}

	view, err := c.Sessions.SetMode(utils.BearerToken(r), payload.Mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, view)
}
