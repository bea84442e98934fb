package handlers

import (
	"net/http"

	"carecircle/internal/reminders"

	"github.com/gin-gonic/gin"
)

// JobHandlers exposes the reminder engine's entry points to the external
// scheduler. Each endpoint runs one reminder class to completion and
// returns the batch summary; individual send failures are counted in the
// summary and never escalate to a 500.
type JobHandlers struct {
	engine *reminders.Engine
}

func NewJobHandlers(engine *reminders.Engine) *JobHandlers {
	return &JobHandlers{engine: engine}
}

// RunAppointmentReminders triggers the appointment-tomorrow batch
func (h *JobHandlers) RunAppointmentReminders(c *gin.Context) {
	summary, err := h.engine.RunAppointmentReminders()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Appointment reminder run failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RunMedicationRefillReminders triggers the low-refill batch
func (h *JobHandlers) RunMedicationRefillReminders(c *gin.Context) {
	summary, err := h.engine.RunMedicationRefillReminders()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Refill reminder run failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RunTrialReminders triggers the trial milestone batch
func (h *JobHandlers) RunTrialReminders(c *gin.Context) {
	summary, err := h.engine.RunTrialReminders()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Trial reminder run failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
