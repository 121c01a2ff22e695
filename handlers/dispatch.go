package handlers

import (
	"net/http"

	"remindify/services/dispatch"
	"remindify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CronHandler exposes the dispatch trigger and the last-run report.
type CronHandler struct {
	Dispatch dispatch.DispatchService
	Logger   *zap.Logger
}

func NewCronHandler(svc dispatch.DispatchService, logger *zap.Logger) *CronHandler {
	return &CronHandler{Dispatch: svc, Logger: logger}
}

// TriggerPendingReminders runs one full dispatch pass. A bulk fetch failure
// aborts the run with no partial success response; the next trigger retries
// the whole pass safely.
func (h *CronHandler) TriggerPendingReminders(c *gin.Context) {
	report, err := h.Dispatch.Run(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Dispatch run failed", err.Error())
		return
	}

	h.Logger.Info("dispatch triggered over HTTP",
		zap.Int("notificationsSent", report.NotificationsSent()),
	)
	c.JSON(http.StatusOK, gin.H{"notificationsSent": report.NotificationsSent()})
}

// GetLastRun returns the most recent stored dispatch report.
func (h *CronHandler) GetLastRun(c *gin.Context) {
	report, err := h.Dispatch.LastReport(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load last run", err.Error())
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No dispatch run recorded yet"})
		return
	}

	c.JSON(http.StatusOK, report)
}
