package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Firesoulcoder/prompt-to-site-generator/internal/auth"
)

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/v1/auth/signup
func (h *APIHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	sess, err := h.sessions.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Sign-up failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "user": sess.User})
}

// POST /api/v1/auth/signin
func (h *APIHandler) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	sess, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Sign-in failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "user": sess.User})
}

// POST /api/v1/auth/signout
func (h *APIHandler) SignOut(c *gin.Context) {
	token := c.GetString("access_token")
	if err := h.sessions.SignOut(c.Request.Context(), token); err != nil {
		log.Printf("Sign-out failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/v1/auth/session
// The session is nullable: an unauthenticated caller gets a 200 with a null
// session, not an error.
func (h *APIHandler) GetSession(c *gin.Context) {
	sess, err := h.sessions.SessionFromToken(c.Request.Context(), auth.BearerToken(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"session": nil, "loading": h.sessions.Loading()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "user": sess.User, "loading": h.sessions.Loading()})
}
