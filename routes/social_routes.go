package routes

import (
	"time"

	"pingly_server/controllers"
	"pingly_server/services"

	"github.com/gorilla/mux"
)

// RegisterSocialRoutes sets up the schedule feed and notification routes
func RegisterSocialRoutes(r *mux.Router, sessions *services.SessionService, now func() time.Time) {
	schedule := controllers.NewScheduleController(now)
	scheduleRouter := protected(r, "/api/schedule", sessions)
	scheduleRouter.HandleFunc("", schedule.ListSchedules).Methods("GET")
	scheduleRouter.HandleFunc("", schedule.CreateSchedule).Methods("POST")

	notifications := controllers.NewNotificationController()
	notificationRouter := protected(r, "/api/notifications", sessions)
	notificationRouter.HandleFunc("", notifications.ListNotifications).Methods("GET")
	notificationRouter.HandleFunc("/read-all", notifications.MarkAllRead).Methods("POST")
	notificationRouter.HandleFunc("/{notificationId}/read", notifications.MarkRead).Methods("POST")
}
