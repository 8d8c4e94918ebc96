package handlers

import (
	"errors"
	"net/http"
	"partnersync/database"
	"partnersync/models"
	"partnersync/reports"
	"partnersync/stats"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// respondError writes the error envelope with the status matching err's kind.
// The error is attached to the context so the request logger records it.
func respondError(c *gin.Context, err error) {
	c.Error(err)

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Server Error"
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}

func statusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, stats.ErrInvalidID),
		errors.Is(err, reports.ErrProjectNotActive),
		errors.Is(err, database.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, reports.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, stats.ErrProjectNotFound),
		errors.Is(err, reports.ErrProjectNotFound),
		errors.Is(err, reports.ErrReportNotFound),
		errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}
