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

type DeleteNotificationController struct {
	Repo repository.NotificationRepository
}

func NewDeleteNotificationController(pool *pgxpool.Pool) *DeleteNotificationController {
	return &DeleteNotificationController{Repo: adapter.NewPgNotificationRepository(pool)}
}

func (h *DeleteNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.Repo.Delete(ctx, id, middleware.UserID(c)); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
