package routes

import (
	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterHistoryRoutes sets up the persisted history routes under /api/history
func RegisterHistoryRoutes(r *mux.Router, sessions *services.SessionService, store controllers.HistoryStore) {
	controller := controllers.NewHistoryController(store)

	historyRouter := protected(r, "/api/history", sessions)
	historyRouter.HandleFunc("/decisions", controller.GetDecisions).Methods("GET")
	historyRouter.HandleFunc("/chat/{matchId}", controller.GetConversation).Methods("GET")
}
