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

// ListChatsController lists the caller's conversations, most recently active
// first (one controller per endpoint).
type ListChatsController struct {
	UC *usecase.ListChatsUseCase
}

func NewListChatsController(pool *pgxpool.Pool) *ListChatsController {
	repo := adapter.NewPgChatRepository(pool)
	return &ListChatsController{UC: usecase.NewListChatsUseCase(repo)}
}

func (h *ListChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		convs, err := h.UC.Execute(ctx, usecase.ListChatsInput{UserID: middleware.UserID(c)})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(convs))
		for _, conv := range convs {
			out = append(out, gin.H{
				"id":              conv.ID,
				"members":         conv.Members,
				"is_group":        conv.IsGroup,
				"session_id":      conv.SessionID,
				"last_message_at": conv.LastMessageAt,
				"created_at":      conv.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"conversations": out, "count": len(out)})
	}
}
