package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Firesoulcoder/prompt-to-site-generator/internal/auth"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler, sessions *auth.Manager) {
	v1 := router.Group("/api/v1")

	// --- Auth ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/signin", h.SignIn)
		authGroup.GET("/session", h.GetSession)
		authGroup.POST("/signout", auth.RequireUser(sessions), h.SignOut)
	}

	// --- Project Lifecycle ---
	projectGroup := v1.Group("/project")
	projectGroup.Use(auth.RequireUser(sessions))
	{
		projectGroup.POST("/generate", h.GenerateSite)               // Generate a document from a prompt
		projectGroup.POST("/generate/stream", h.GenerateSiteStream)  // Same, with SSE progress events
		projectGroup.POST("/save", h.SaveProject)                    // Persist a generated document
		projectGroup.GET("/:id", h.GetProject)                       // Fetch one project
		projectGroup.POST("/:id/enhance", h.EnhanceSite)             // Apply an enhancement instruction
		projectGroup.GET("/:id/raw", h.RawProject)                   // Serve the document for the preview iframe
		projectGroup.GET("/:id/download", h.DownloadProject)         // Download as an attachment
	}

	v1.GET("/projects", auth.RequireUser(sessions), h.ListProjects)

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
