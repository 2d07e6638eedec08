package routes

import (
	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterDeckRoutes sets up the swipe deck routes under /api/deck
func RegisterDeckRoutes(r *mux.Router, sessions *services.SessionService) {
	controller := controllers.NewDeckController()

	deckRouter := protected(r, "/api/deck", sessions)
	deckRouter.HandleFunc("", controller.GetDeck).Methods("GET")
	deckRouter.HandleFunc("/drag", controller.Drag).Methods("POST")
	deckRouter.HandleFunc("/release", controller.Release).Methods("POST")
	deckRouter.HandleFunc("/decision", controller.Decide).Methods("POST")
	deckRouter.HandleFunc("/trigger", controller.Trigger).Methods("POST")
}
