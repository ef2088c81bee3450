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

// ListNotificationsController returns the caller's notifications, newest
// first (one controller per endpoint).
type ListNotificationsController struct {
	Repo repository.NotificationRepository
}

func NewListNotificationsController(pool *pgxpool.Pool) *ListNotificationsController {
	return &ListNotificationsController{Repo: adapter.NewPgNotificationRepository(pool)}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ns, err := h.Repo.ListByUser(ctx, middleware.UserID(c))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": ns, "count": len(ns)})
	}
}
