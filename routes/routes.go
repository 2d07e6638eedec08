package routes

import (
	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up the public routes for the application
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
}

// protected returns a subrouter under prefix that requires a signed-in dashboard.
func protected(r *mux.Router, prefix string, sessions *services.SessionService) *mux.Router {
	sub := r.PathPrefix(prefix).Subrouter()
	sub.Use(controllers.RequireDashboard(sessions))
	return sub
}
