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

// ClearNotificationsController wipes the caller's whole notification feed.
type ClearNotificationsController struct {
	Repo repository.NotificationRepository
}

func NewClearNotificationsController(pool *pgxpool.Pool) *ClearNotificationsController {
	return &ClearNotificationsController{Repo: adapter.NewPgNotificationRepository(pool)}
}

func (h *ClearNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.Repo.ClearByUser(ctx, middleware.UserID(c)); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
