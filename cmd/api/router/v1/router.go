package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	qport "mindline/internal/infrastructure/queue/port"
	"mindline/internal/infrastructure/realtime"
	"mindline/internal/middleware"
	"mindline/internal/pkg/chat/application/usecase"
	chathttp "mindline/internal/pkg/chat/presentation/http"
	"mindline/internal/pkg/notification/application/dispatcher"
	notificationhttp "mindline/internal/pkg/notification/presentation/http"
)

// Deps carries everything the v1 routes need. Wired once in main and passed
// down; handlers never reach for globals.
type Deps struct {
	Pool       *pgxpool.Pool
	Guard      usecase.SessionGuard
	Registry   *realtime.Registry
	Dispatcher *dispatcher.Dispatcher
	Queue      qport.Client
	Log        *zap.Logger
	JWTSecret  string
}

// RegisterRoutes mounts all version 1 API routes under /api/v1. Every
// endpoint requires a valid bearer token, the websocket upgrade included.
func RegisterRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(d.JWTSecret))
	v1.Use(middleware.Analytics(d.Queue, d.Log))

	chathttp.RegisterRoutes(v1, d.Pool, d.Guard, d.Registry, d.Log)
	notificationhttp.RegisterRoutes(v1, d.Pool, d.Dispatcher, d.Queue)
}
