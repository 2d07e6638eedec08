package controllers

import (
	"net/http"
	"strconv"

	"pingly_server/services"
	"pingly_server/utils"

	"github.com/gorilla/mux"
)

// ProfessionalController serves projects, project ideas, Q&A, discussions and
// the leaderboard.
type ProfessionalController struct{}

func NewProfessionalController() *ProfessionalController {
	return &ProfessionalController{}
}

type textPayload struct {
	Text string `json:"text"`
}

func decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload textPayload
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return "", false
	}
	return payload.Text, true
}

// ---- Projects ----

func (c *ProfessionalController) ListProjects(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dashboardFrom(r).Projects().List())
}

// OpenProject resets the unread counter and returns the group chat.
func (c *ProfessionalController) OpenProject(w http.ResponseWriter, r *http.Request) {
	chat, ok := dashboardFrom(r).Projects().Open(mux.Vars(r)["projectId"])
	if !ok {
		writeServiceError(w, services.ErrNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, chat)
}

func (c *ProfessionalController) CloseProject(w http.ResponseWriter, r *http.Request) {
	dashboardFrom(r).Projects().Close(mux.Vars(r)["projectId"])
	w.WriteHeader(http.StatusNoContent)
}

// PostProjectMessage appends to a project's group chat.
func (c *ProfessionalController) PostProjectMessage(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	msg, changed, err := dashboardFrom(r).Projects().Post(mux.Vars(r)["projectId"], text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "message", msg)
}

// ---- Project ideas ----

func (c *ProfessionalController) ListIdeas(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dashboardFrom(r).Ideas().List())
}

func (c *ProfessionalController) PostIdea(w http.ResponseWriter, r *http.Request) {
	var input services.IdeaInput
	if err := utils.DecodeJSONBody(r, &input); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}
	idea, err := dashboardFrom(r).Ideas().Post(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, idea)
}

// WishIdea sends the user's best wishes to an idea, once.
func (c *ProfessionalController) WishIdea(w http.ResponseWriter, r *http.Request) {
	dash := dashboardFrom(r)
	idea, changed, err := dash.Ideas().Wish(mux.Vars(r)["ideaId"], dash.User().ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "idea", idea)
}

// ---- Questions ----

func (c *ProfessionalController) ListQuestions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dashboardFrom(r).Questions().List())
}

func (c *ProfessionalController) AskQuestion(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	q, err := dashboardFrom(r).Questions().Ask(text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, q)
}

func (c *ProfessionalController) MarkUseful(w http.ResponseWriter, r *http.Request) {
	dash := dashboardFrom(r)
	q, changed, err := dash.Questions().MarkUseful(mux.Vars(r)["questionId"], dash.User().ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "question", q)
}

func (c *ProfessionalController) ReplyToQuestion(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	q, changed, err := dashboardFrom(r).Questions().Reply(mux.Vars(r)["questionId"], text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "question", q)
}

// ---- Discussions ----

func (c *ProfessionalController) ListDiscussions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dashboardFrom(r).Discussions().List())
}

func (c *ProfessionalController) GetDiscussion(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(mux.Vars(r)["rank"])
	if err != nil {
		badRequest(w, "rank must be a number")
		return
	}
	thread, ok := dashboardFrom(r).Discussions().Thread(rank)
	if !ok {
		writeServiceError(w, services.ErrNotFound)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, thread)
}

func (c *ProfessionalController) PostToDiscussion(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(mux.Vars(r)["rank"])
	if err != nil {
		badRequest(w, "rank must be a number")
		return
	}
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	thread, changed, err := dashboardFrom(r).Discussions().Post(rank, text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeChange(w, changed, "discussion", thread)
}

// ---- Leaderboard ----

func (c *ProfessionalController) Leaderboard(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dashboardFrom(r).Leaderboard().Entries())
}
