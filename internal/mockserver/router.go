// Package mockserver implements the review backend's full REST surface
// with deterministic in-memory data. It exists to unblock local
// development and integration testing; its envelope and error semantics
// must match the real backend exactly.
package mockserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler bundles the dependencies for the mock API endpoints.
type Handler struct {
	store *Store
	auth  *AuthService
}

func New(store *Store, auth *AuthService) *Handler {
	return &Handler{store: store, auth: auth}
}

type RouterDeps struct {
	ServiceName string
	Version     string
	AuthSecret  string
}

// BuildRouter wires the complete mock API.
func BuildRouter(dep RouterDeps) (*gin.Engine, *Store) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(cors.Default())

	store := NewStore()
	auth := NewAuthService(dep.AuthSecret)
	h := New(store, auth)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   dep.ServiceName,
			"version":   dep.Version,
		})
	})

	// The browser WebSocket API cannot set an Authorization header, so
	// the status channel sits outside the bearer-guarded group.
	r.GET("/ws/projects/:id/status", h.streamStatus)

	api := r.Group("/api/v1")
	api.POST("/auth/login", h.login)

	authed := api.Group("")
	authed.Use(AuthRequired(auth))

	authed.GET("/projects", h.listProjects)
	authed.POST("/projects", h.createProject)
	authed.GET("/projects/statistics", h.getStatistics)
	authed.GET("/projects/:id", h.getProject)
	authed.PUT("/projects/:id", h.updateProject)
	authed.DELETE("/projects/:id", h.deleteProject)
	authed.PUT("/projects/:id/team-members", h.updateTeamMembers)

	authed.GET("/projects/:id/scores", h.getScores)
	authed.PUT("/projects/:id/scores", h.updateScores)
	authed.GET("/projects/:id/scores/summary", h.getScoreSummary)
	authed.GET("/projects/:id/scores/history", h.getScoreHistory)

	authed.GET("/projects/:id/missing-information", h.listMissingInfo)
	authed.POST("/projects/:id/missing-information", h.addMissingInfo)
	authed.PUT("/projects/:id/missing-information/:infoId", h.updateMissingInfo)
	authed.DELETE("/projects/:id/missing-information/:infoId", h.deleteMissingInfo)

	authed.POST("/projects/:id/business-plans", h.uploadBusinessPlan)
	authed.GET("/projects/:id/business-plans/status", h.getBusinessPlanStatus)
	authed.GET("/projects/:id/business-plans/info", h.getBusinessPlanInfo)
	authed.GET("/projects/:id/business-plans/download", h.downloadBusinessPlan)

	authed.GET("/projects/:id/reports/download", h.downloadReport)

	return r, store
}
