package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindline/internal/infrastructure/metrics"
	"mindline/internal/middleware"
	"mindline/internal/pkg/chat/application/usecase"
	"mindline/internal/pkg/chat/persistence/repository/adapter"
)

// SendMessageController handles the durable send-message endpoint (one
// controller per endpoint). This is the system of record; the socket layer
// only mirrors what is persisted here.
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(pool *pgxpool.Pool, guard usecase.SessionGuard) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(repo, guard)}
}

type sendMessageRequest struct {
	Text        *string  `json:"text"`
	Emoji       *string  `json:"emoji"`
	Attachments []string `json:"attachments"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: conversationID,
			SenderID:       middleware.UserID(c),
			Text:           req.Text,
			Emoji:          req.Emoji,
			Attachments:    req.Attachments,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		metrics.MessagesSent.Inc()

		c.JSON(http.StatusCreated, gin.H{
			"id":              msg.ID,
			"conversation_id": msg.ConversationID,
			"sender_id":       msg.SenderID,
			"cipher_text":     msg.CipherText,
			"emoji":           msg.Emoji,
			"attachments":     msg.Attachments,
			"created_at":      msg.CreatedAt,
		})
	}
}
