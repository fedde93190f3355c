package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Firesoulcoder/prompt-to-site-generator/internal/ai"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/auth"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/projects"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/utils"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator *ai.Generator
	store     *projects.Store
	sessions  *auth.Manager

	// Per-user sequencers; a response whose sequence number is no longer
	// current was superseded by a newer request and is discarded.
	seqMu sync.Mutex
	seqs  map[string]*ai.Sequencer
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator *ai.Generator, store *projects.Store, sessions *auth.Manager) *APIHandler {
	return &APIHandler{
		generator: generator,
		store:     store,
		sessions:  sessions,
		seqs:      make(map[string]*ai.Sequencer),
	}
}

func (h *APIHandler) sequencer(userID string) *ai.Sequencer {
	h.seqMu.Lock()
	defer h.seqMu.Unlock()
	s, ok := h.seqs[userID]
	if !ok {
		s = &ai.Sequencer{}
		h.seqs[userID] = s
	}
	return s
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type GenerateResponse struct {
	HTML string `json:"html"`
}

type EnhanceRequest struct {
	Instruction string `json:"instruction" binding:"required"`
	HTML        string `json:"html"` // optional; defaults to the stored document
}

type EnhanceResponse struct {
	HTML string `json:"html"`
}

type SaveRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	HTML   string `json:"html" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

type SaveResponse struct {
	ProjectID string `json:"projectId"`
}

// --- Project Handlers ---

// POST /api/v1/project/generate
// Generation never surfaces an error to the UI: on any failure the response
// still carries displayable fallback HTML.
func (h *APIHandler) GenerateSite(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID := c.GetString("user_id")
	log.Printf("Received generation request from user %s", userID)

	seq := h.sequencer(userID)
	token := seq.Next()

	html := h.generator.GenerateWebsite(c.Request.Context(), req.Prompt, nil)

	if !seq.IsCurrent(token) {
		log.Printf("Discarding stale generation result for user %s", userID)
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer request"})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{HTML: html})
}

// POST /api/v1/project/generate/stream
// Same pipeline, but progress events are pushed over SSE before the result.
func (h *APIHandler) GenerateSiteStream(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID := c.GetString("user_id")
	seq := h.sequencer(userID)
	token := seq.Next()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	report := func(ev ai.ProgressEvent) {
		c.SSEvent("progress", ev)
		c.Writer.Flush()
	}

	html := h.generator.GenerateWebsite(c.Request.Context(), req.Prompt, report)

	if !seq.IsCurrent(token) {
		c.SSEvent("superseded", gin.H{"error": "superseded by a newer request"})
		c.Writer.Flush()
		return
	}

	c.SSEvent("result", GenerateResponse{HTML: html})
	c.Writer.Flush()
}

// POST /api/v1/project/:id/enhance
// Enhancement fails loudly so the caller can distinguish "no change applied"
// from "change applied".
func (h *APIHandler) EnhanceSite(c *gin.Context) {
	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID := c.GetString("user_id")

	htmlContent := req.HTML
	if htmlContent == "" {
		p, ok := h.ownedProject(c, userID)
		if !ok {
			return
		}
		htmlContent = p.HTMLContent
	}

	seq := h.sequencer(userID)
	token := seq.Next()

	enhanced, err := h.generator.EnhanceWebsite(c.Request.Context(), htmlContent, req.Instruction)
	if err != nil {
		log.Printf("Error enhancing website for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if !seq.IsCurrent(token) {
		log.Printf("Discarding stale enhancement result for user %s", userID)
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer request"})
		return
	}

	c.JSON(http.StatusOK, EnhanceResponse{HTML: enhanced})
}

// POST /api/v1/project/save
// Save degrades to the offline store rather than aborting the workflow, so
// it always returns an identifier.
func (h *APIHandler) SaveProject(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID := c.GetString("user_id")
	id := h.store.Save(c.Request.Context(), userID, req.Prompt, req.HTML, req.Title)

	log.Printf("Saved project %s for user %s", id, userID)
	c.JSON(http.StatusCreated, SaveResponse{ProjectID: id})
}

// GET /api/v1/projects
func (h *APIHandler) ListProjects(c *gin.Context) {
	userID := c.GetString("user_id")

	list, degraded := h.store.ListByUser(c.Request.Context(), userID)
	body := gin.H{"projects": list, "degraded": degraded}
	if degraded {
		body["notice"] = "Could not reach the project store; showing locally saved projects."
	}
	c.JSON(http.StatusOK, body)
}

// GET /api/v1/project/:id
func (h *APIHandler) GetProject(c *gin.Context) {
	userID := c.GetString("user_id")
	if p, ok := h.ownedProject(c, userID); ok {
		c.JSON(http.StatusOK, gin.H{"project": p})
	}
}

// GET /api/v1/project/:id/raw
// Serves the document itself for the sandboxed preview iframe. The CSP
// sandbox header keeps scripts isolated from this origin.
func (h *APIHandler) RawProject(c *gin.Context) {
	userID := c.GetString("user_id")
	p, ok := h.ownedProject(c, userID)
	if !ok {
		return
	}

	c.Header("Content-Security-Policy", "sandbox allow-scripts")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(p.HTMLContent))
}

// GET /api/v1/project/:id/download
func (h *APIHandler) DownloadProject(c *gin.Context) {
	userID := c.GetString("user_id")
	p, ok := h.ownedProject(c, userID)
	if !ok {
		return
	}

	filename := utils.DownloadFilename(p.Title)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(p.HTMLContent))
}

// ownedProject fetches the :id project and enforces ownership. On failure
// it writes the error response and returns ok=false.
func (h *APIHandler) ownedProject(c *gin.Context, userID string) (*projects.Project, bool) {
	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required in path"})
		return nil, false
	}

	p, err := h.store.GetByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return nil, false
		}
		log.Printf("Error fetching project %s: %v", projectID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Connection to the project store failed. Please retry.",
			"retry": true,
		})
		return nil, false
	}

	// Ownership failures look like absence so ids cannot be probed.
	if p.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, false
	}
	return p, true
}
