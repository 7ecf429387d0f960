package api

import (
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	assistant service.AssistantService
}

func NewAssistantHandler(assistant service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type SendMessageResponse struct {
	Reply domain.ConversationTurn `json:"reply"`
}

// SendMessage godoc
// @Summary Talk to the fitness assistant
// @Description Schedule questions are answered from the user's workouts; anything else goes to the language model.
// @Tags Assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body SendMessageRequest true "User message"
// @Success 200 {object} SendMessageResponse
// @Failure 400 {object} gin.H "Empty message"
// @Failure 502 {object} gin.H "Provider failure"
// @Router /assistant/messages [post]
func (h *AssistantHandler) SendMessage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	turn, err := h.assistant.SendMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondServiceError(c, "SendMessage", err)
		return
	}
	c.JSON(http.StatusOK, SendMessageResponse{Reply: turn})
}

// GetHistory returns the visible conversation.
// @Router /assistant/history [get]
func (h *AssistantHandler) GetHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	history, err := h.assistant.History(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "GetHistory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": history})
}

// ResetHistory clears the conversation.
// @Router /assistant/history [delete]
func (h *AssistantHandler) ResetHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.assistant.Reset(c.Request.Context(), userID); err != nil {
		respondServiceError(c, "ResetHistory", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportTranscript uploads the conversation and returns a download link.
// @Router /assistant/transcripts [post]
func (h *AssistantHandler) ExportTranscript(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	export, err := h.assistant.ExportTranscript(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "ExportTranscript", err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

// GetProfile returns the stored profile, or null when none is set.
// @Router /profile [get]
func (h *AssistantHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	profile, err := h.assistant.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "GetProfile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile replaces the profile and refreshes the assistant's system prompt.
// @Router /profile [put]
func (h *AssistantHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := h.assistant.SetProfile(c.Request.Context(), userID, &profile); err != nil {
		respondServiceError(c, "UpdateProfile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
