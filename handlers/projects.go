package handlers

import (
	"context"
	"errors"
	"net/http"
	"partnersync/database"
	"partnersync/models"
	"partnersync/stats"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectStore interface {
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, p models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

func CreateProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		project := req.ToProject(time.Now().UTC())
		if err := project.Validate(); err != nil {
			respondError(c, err)
			return
		}

		created, err := store.CreateProject(c.Request.Context(), project)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
	}
}

func ListProjects(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := store.ListProjects(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Success: true,
			Count:   len(projects),
			Data:    projects,
		})
	}
}

func GetProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseID(c, "invalid project ID")
		if !ok {
			return
		}

		project, err := store.GetProject(c.Request.Context(), projectID)
		if err != nil {
			respondError(c, projectLookupError(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": project})
	}
}

func UpdateProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseID(c, "invalid project ID")
		if !ok {
			return
		}

		var req models.UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		project, err := store.GetProject(ctx, projectID)
		if err != nil {
			respondError(c, projectLookupError(err))
			return
		}

		req.Apply(project)
		if err := project.Validate(); err != nil {
			respondError(c, err)
			return
		}

		updated, err := store.UpdateProject(ctx, *project)
		if err != nil {
			respondError(c, projectLookupError(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

// DeleteProject removes the project row only; its reports are left in place.
func DeleteProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseID(c, "invalid project ID")
		if !ok {
			return
		}

		if err := store.DeleteProject(c.Request.Context(), projectID); err != nil {
			respondError(c, projectLookupError(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project removed from registry"})
	}
}

func parseID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

func projectLookupError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return stats.ErrProjectNotFound
	}
	return err
}
