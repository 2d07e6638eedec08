package routes

import (
	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfessionalRoutes sets up projects, ideas, questions, discussions and leaderboard
func RegisterProfessionalRoutes(r *mux.Router, sessions *services.SessionService) {
	controller := controllers.NewProfessionalController()

	projectRouter := protected(r, "/api/projects", sessions)
	projectRouter.HandleFunc("", controller.ListProjects).Methods("GET")
	projectRouter.HandleFunc("/{projectId}/open", controller.OpenProject).Methods("POST")
	projectRouter.HandleFunc("/{projectId}/close", controller.CloseProject).Methods("POST")
	projectRouter.HandleFunc("/{projectId}/messages", controller.PostProjectMessage).Methods("POST")

	ideaRouter := protected(r, "/api/ideas", sessions)
	ideaRouter.HandleFunc("", controller.ListIdeas).Methods("GET")
	ideaRouter.HandleFunc("", controller.PostIdea).Methods("POST")
	ideaRouter.HandleFunc("/{ideaId}/wish", controller.WishIdea).Methods("POST")

	questionRouter := protected(r, "/api/questions", sessions)
	questionRouter.HandleFunc("", controller.ListQuestions).Methods("GET")
	questionRouter.HandleFunc("", controller.AskQuestion).Methods("POST")
	questionRouter.HandleFunc("/{questionId}/useful", controller.MarkUseful).Methods("POST")
	questionRouter.HandleFunc("/{questionId}/replies", controller.ReplyToQuestion).Methods("POST")

	discussionRouter := protected(r, "/api/discussions", sessions)
	discussionRouter.HandleFunc("", controller.ListDiscussions).Methods("GET")
	discussionRouter.HandleFunc("/{rank:[0-9]+}", controller.GetDiscussion).Methods("GET")
	discussionRouter.HandleFunc("/{rank:[0-9]+}/messages", controller.PostToDiscussion).Methods("POST")

	leaderboardRouter := protected(r, "/api/leaderboard", sessions)
	leaderboardRouter.HandleFunc("", controller.Leaderboard).Methods("GET")
}
