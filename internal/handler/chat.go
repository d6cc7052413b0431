package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/statuswatch/backend/internal/model"
	"github.com/statuswatch/backend/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Ask godoc
// @Summary Ask a question about system status
// @Description Answers over the client-supplied session snapshot, stored reports, or both, per the source field.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ChatRequest true "Question with optional session context"
// @Success 200 {object} model.ChatResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) Ask(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.svc.Ask(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidChatRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
