// Package httpapi exposes the chat pipeline over HTTP. The handlers are thin
// plumbing: they bind JSON, call the orchestrator, and render its results.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwhitaker/chatrelay/internal/chat"
)

type Server struct {
	orchestrator *chat.Orchestrator
}

func NewServer(orchestrator *chat.Orchestrator) *Server {
	return &Server{orchestrator: orchestrator}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(CORS())

	r.POST("/chat", s.handleChat)
	r.POST("/reset_session", s.handleResetSession)
	r.GET("/health", s.handleHealth)

	return r
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.orchestrator.HandleMessage(c.Request.Context(), req.SessionID, req.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty message"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Provider failures are a 200 with the error field set, so the caller
	// keeps a usable session id
	c.JSON(http.StatusOK, chatResponse{
		Response:  result.Response,
		SessionID: result.SessionID,
		Error:     result.Err,
	})
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleResetSession(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.orchestrator.ResetSession(req.SessionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "session_id": req.SessionID})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CORS allows any origin to call the API, mirroring a permissive browser
// frontend setup. Preflight requests are answered directly.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
