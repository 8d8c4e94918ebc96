package handlers

import (
	"context"
	"net/http"
	"partnersync/models"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StatsService interface {
	ListProjectStats(ctx context.Context, q models.StatsQuery) (*models.ProjectStatsPage, error)
	GetProjectStats(ctx context.Context, rawID string) (*models.ProjectWithStats, error)
}

// ListProjectStats serves a page of projects with their statistics.
// Malformed page and limit values fall back to the defaults instead of failing.
func ListProjectStats(svc StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		result, err := svc.ListProjectStats(c.Request.Context(), models.StatsQuery{
			Page:         page,
			Limit:        limit,
			SDGGoal:      c.Query("sdgGoal"),
			Status:       c.Query("status"),
			Organization: c.Query("organization"),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func GetProjectStats(svc StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.GetProjectStats(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}
