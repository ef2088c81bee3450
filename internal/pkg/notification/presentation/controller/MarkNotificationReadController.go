package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindline/internal/middleware"
	"mindline/internal/pkg/notification/persistence/repository/adapter"
	repository "mindline/internal/pkg/notification/persistence/repository/port"
)

// MarkNotificationReadController flips the read flag, the only mutation a
// notification allows after creation (one controller per endpoint).
type MarkNotificationReadController struct {
	Repo repository.NotificationRepository
}

func NewMarkNotificationReadController(pool *pgxpool.Pool) *MarkNotificationReadController {
	return &MarkNotificationReadController{Repo: adapter.NewPgNotificationRepository(pool)}
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.Repo.MarkRead(ctx, id, middleware.UserID(c))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, n)
	}
}
