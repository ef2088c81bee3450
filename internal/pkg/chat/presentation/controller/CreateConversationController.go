package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindline/internal/middleware"
	"mindline/internal/pkg/chat/application/usecase"
	"mindline/internal/pkg/chat/persistence/repository/adapter"
)

// CreateConversationController handles the create-or-fetch conversation
// endpoint. One controller per endpoint.
type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(pool *pgxpool.Pool, guard usecase.SessionGuard) *CreateConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(repo, guard)}
}

type createConversationRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, created, err := h.UC.Execute(ctx, usecase.CreateConversationInput{
			AppointmentID: req.AppointmentID,
			CallerID:      middleware.UserID(c),
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"id":              conv.ID,
			"members":         conv.Members,
			"is_group":        conv.IsGroup,
			"session_id":      conv.SessionID,
			"last_message_at": conv.LastMessageAt,
			"created_at":      conv.CreatedAt,
		})
	}
}
