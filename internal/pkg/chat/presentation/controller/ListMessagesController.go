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

// ListMessagesController serves the decrypted conversation history (one
// controller per endpoint).
type ListMessagesController struct {
	UC *usecase.ListMessagesUseCase
}

func NewListMessagesController(pool *pgxpool.Pool) *ListMessagesController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListMessagesController{UC: usecase.NewListMessagesUseCase(repo)}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.ListMessagesInput{
			ConversationID: conversationID,
			CallerID:       middleware.UserID(c),
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": msgs,
			"count":    len(msgs),
		})
	}
}
