package controllers

import (
	"net/http"
	"time"

	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/utils"
)

// ScheduleController serves the social activity feed.
type ScheduleController struct {
	Now func() time.Time
}

func NewScheduleController(now func() time.Time) *ScheduleController {
	if now == nil {
		now = time.Now
	}
	return &ScheduleController{Now: now}
}

type scheduleView struct {
	models.ScheduleEntry
	TimeAgo string `json:"timeAgo"`
}

// ListSchedules returns the unexpired entries of the user and their matches.
func (c *ScheduleController) ListSchedules(w http.ResponseWriter, r *http.Request) {
	entries := dashboardFrom(r).VisibleSchedules()
	now := c.Now()
	out := make([]scheduleView, 0, len(entries))
	for _, e := range entries {
		out = append(out, scheduleView{ScheduleEntry: e, TimeAgo: services.FormatRelativeTime(now, e.CreatedAt)})
	}
	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// CreateSchedule posts a new activity.
func (c *ScheduleController) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var input services.ScheduleInput
	if err := utils.DecodeJSONBody(r, &input); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}
	entry, err := dashboardFrom(r).Schedule().Create(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, entry)
}
