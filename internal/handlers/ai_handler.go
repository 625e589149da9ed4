package handlers

import (
	"net/http"
	"os"

	"wholesale-pos/internal/ai"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AIHandler - owner-facing store assistant.
type AIHandler struct {
	db *gorm.DB
}

func NewAIHandler(db *gorm.DB) *AIHandler {
	return &AIHandler{db: db}
}

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *AIHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Message is required")
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		respondError(c, http.StatusInternalServerError, "Server missing Gemini API key")
		return
	}

	response, err := ai.RunAgent(h.db, req.Message, apiKey)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, "Assistant replied", gin.H{"reply": response})
}
