package routes

import (
	"time"

	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up request, match and chat routes
func RegisterMatchRoutes(r *mux.Router, sessions *services.SessionService, now func() time.Time) {
	controller := controllers.NewMatchController(now)

	requestRouter := protected(r, "/api/requests", sessions)
	requestRouter.HandleFunc("", controller.ListRequests).Methods("GET")
	requestRouter.HandleFunc("/{requestId}/accept", controller.AcceptRequest).Methods("POST")
	requestRouter.HandleFunc("/{requestId}/decline", controller.DeclineRequest).Methods("POST")

	matchRouter := protected(r, "/api/matches", sessions)
	matchRouter.HandleFunc("", controller.ListMatches).Methods("GET")
	matchRouter.HandleFunc("/celebration", controller.Celebration).Methods("GET")
	matchRouter.HandleFunc("/celebration/dismiss", controller.DismissCelebration).Methods("POST")
	matchRouter.HandleFunc("/{matchId}", controller.Unmatch).Methods("DELETE")

	chatRouter := protected(r, "/api/chat", sessions)
	chatRouter.HandleFunc("/{matchId}/messages", controller.GetMessages).Methods("GET")
	chatRouter.HandleFunc("/{matchId}/messages", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/{matchId}/incoming", controller.ReceiveMessage).Methods("POST")
	chatRouter.HandleFunc("/{matchId}/open", controller.OpenConversation).Methods("POST")
	chatRouter.HandleFunc("/{matchId}/close", controller.CloseConversation).Methods("POST")
}
