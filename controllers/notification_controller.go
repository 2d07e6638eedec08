package controllers

import (
	"net/http"

	"pingly_server/utils"

	"github.com/gorilla/mux"
)

// NotificationController serves the header notifications of each mode.
type NotificationController struct{}

func NewNotificationController() *NotificationController {
	return &NotificationController{}
}

// ListNotifications returns ?mode= notifications and their unread count.
func (c *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		badRequest(w, "mode must be professional or social")
		return
	}
	center := dashboardFrom(r).Notifications()
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"mode":          mode,
		"notifications": center.List(mode),
		"unread":        center.UnreadCount(mode),
	})
}

func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	changed := dashboardFrom(r).Notifications().MarkRead(mux.Vars(r)["notificationId"])
	writeChange(w, changed, "", nil)
}

func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(r)
	if !ok {
		badRequest(w, "mode must be professional or social")
		return
	}
	n := dashboardFrom(r).Notifications().MarkAllRead(mode)
	writeChange(w, n > 0, "marked", n)
}
