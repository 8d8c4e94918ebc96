package handlers

import (
	"partnersync/middleware"
	"partnersync/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires every API route. Reads are public; writes need a bearer token.
func NewRouter(projects ProjectStore, statsSvc StatsService, reportSvc ReportService, jwtSecret string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthRequired(jwtSecret)
	contributors := middleware.Authorize(models.RoleAdmin, models.RolePartner, models.RoleGovernment)

	api := r.Group("/api")

	p := api.Group("/projects")
	{
		p.GET("", ListProjects(projects))
		p.GET("/stats", ListProjectStats(statsSvc))
		p.GET("/:id", GetProject(projects))
		p.GET("/:id/stats", GetProjectStats(statsSvc))
		p.POST("", auth, contributors, CreateProject(projects))
		p.PUT("/:id", auth, contributors, UpdateProject(projects))
		p.DELETE("/:id", auth, middleware.Authorize(models.RoleAdmin), DeleteProject(projects))
	}

	rep := api.Group("/reports")
	{
		rep.GET("/project/:id", GetProjectReports(reportSvc))
		rep.GET("/stats/summary", ReportSummary(reportSvc))
		rep.POST("/submit", auth, contributors, SubmitReport(reportSvc))
		rep.PUT("/update/:id", auth, UpdateReport(reportSvc))
		rep.DELETE("/remove/:id", auth, DeleteReport(reportSvc))
	}

	return r
}
