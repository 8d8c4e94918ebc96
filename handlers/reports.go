package handlers

import (
	"context"
	"net/http"
	"partnersync/middleware"
	"partnersync/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportService interface {
	Submit(ctx context.Context, caller models.Caller, req models.SubmitReportRequest) (*models.Report, *string, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, q models.ReportQuery) ([]models.Report, error)
	Update(ctx context.Context, caller models.Caller, reportID uuid.UUID, req models.UpdateReportRequest) (*models.Report, error)
	Delete(ctx context.Context, caller models.Caller, reportID uuid.UUID) error
	Summary(ctx context.Context) (*models.ReportSummary, error)
}

// SubmitReport stores a progress report. A failed currency conversion still
// stores the report and is surfaced as a warning.
func SubmitReport(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.CallerFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authenticated"})
			return
		}

		var req models.SubmitReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		report, warning, err := svc.Submit(c.Request.Context(), caller, req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.ReportResponse{
			Success: true,
			Data:    *report,
			Message: "Report submitted successfully",
			Warning: warning,
		})
	}
}

func GetProjectReports(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseID(c, "invalid project ID")
		if !ok {
			return
		}

		var q models.ReportQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c, err.Error())
			return
		}

		list, err := svc.ListByProject(c.Request.Context(), projectID, q)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []models.Report{}
		}

		c.JSON(http.StatusOK, models.ReportsResponse{
			Success: true,
			Count:   len(list),
			Data:    list,
		})
	}
}

func UpdateReport(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.CallerFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authenticated"})
			return
		}

		reportID, ok := parseID(c, "invalid report ID")
		if !ok {
			return
		}

		var req models.UpdateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		report, err := svc.Update(c.Request.Context(), caller, reportID, req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
	}
}

func DeleteReport(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.CallerFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authenticated"})
			return
		}

		reportID, ok := parseID(c, "invalid report ID")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), caller, reportID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully"})
	}
}

func ReportSummary(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Summary(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
	}
}
