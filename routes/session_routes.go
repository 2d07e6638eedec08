package routes

import (
	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterSessionRoutes sets up the login / registration / mode routes under /api/session
func RegisterSessionRoutes(r *mux.Router, sessions *services.SessionService) {
	controller := controllers.NewSessionController(sessions)

	sessionRouter := r.PathPrefix("/api/session").Subrouter()
	sessionRouter.HandleFunc("", controller.Current).Methods("GET")
	sessionRouter.HandleFunc("/start", controller.Start).Methods("POST")
	sessionRouter.HandleFunc("/signup", controller.BeginSignup).Methods("POST")
	sessionRouter.HandleFunc("/signup/cancel", controller.CancelSignup).Methods("POST")
	sessionRouter.HandleFunc("/register", controller.Register).Methods("POST")
	sessionRouter.HandleFunc("/login", controller.Login).Methods("POST")
	sessionRouter.HandleFunc("/signout", controller.SignOut).Methods("POST")
	sessionRouter.HandleFunc("/mode", controller.SetMode).Methods("PUT")
}
