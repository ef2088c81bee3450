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

// GetNotificationController fetches one of the caller's notifications by id
// (one controller per endpoint).
type GetNotificationController struct {
	Repo repository.NotificationRepository
}

func NewGetNotificationController(pool *pgxpool.Pool) *GetNotificationController {
	return &GetNotificationController{Repo: adapter.NewPgNotificationRepository(pool)}
}

func (h *GetNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.Repo.GetByID(ctx, id, middleware.UserID(c))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, n)
	}
}
