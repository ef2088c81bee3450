package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "mindline/cmd/api/router/v1"
	cacheadapter "mindline/internal/infrastructure/cache/adapter"
	"mindline/internal/infrastructure/database"
	"mindline/internal/infrastructure/logger"
	queueadapter "mindline/internal/infrastructure/queue/adapter"
	"mindline/internal/infrastructure/realtime"
	analyticstask "mindline/internal/pkg/analytics/task"
	"mindline/internal/pkg/notification/application/dispatcher"
	notificationtask "mindline/internal/pkg/notification/application/task"
	notificationadapter "mindline/internal/pkg/notification/persistence/repository/adapter"
	"mindline/internal/pkg/session/application/guard"
	sessionadapter "mindline/internal/pkg/session/persistence/repository/adapter"
	sessionport "mindline/internal/pkg/session/persistence/repository/port"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found or could not be loaded: %v", err)
	}

	zlog, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		zlog.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Appointment lookups run on every chat write, so they go through a short
	// read-through cache. Missing Redis degrades to direct reads.
	var appointments sessionport.AppointmentRepository = sessionadapter.NewPgAppointmentRepository(pool)
	cache, err := cacheadapter.NewRedisAdapter()
	if err != nil {
		zlog.Warn("redis unavailable, appointment cache disabled", zap.Error(err))
	} else {
		defer func() { _ = cache.Close() }()
		appointments = sessionadapter.NewCachedAppointmentRepository(appointments, cache, time.Minute)
	}
	sessionGuard := guard.New(appointments)

	queueClient, err := queueadapter.NewAsynqClientFromEnv()
	if err != nil {
		zlog.Fatal("failed to build queue client", zap.Error(err))
	}
	defer func() { _ = queueClient.Close() }()

	registry := realtime.NewRegistry()
	notifications := notificationadapter.NewPgNotificationRepository(pool)
	d := dispatcher.New(notifications, registry, zlog)

	// In-process workers consume the same Redis the API enqueues to.
	queueServer, err := queueadapter.NewAsynqServer(zlog)
	if err != nil {
		zlog.Fatal("failed to build queue server", zap.Error(err))
	}
	notificationtask.RegisterBroadcastNotificationTask(queueServer, d)
	analyticstask.RegisterTrackPageTask(queueServer, pool)

	workerDone := make(chan error, 1)
	go func() { workerDone <- queueServer.Run(ctx) }()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.RegisterRoutes(r, v1.Deps{
		Pool:       pool,
		Guard:      sessionGuard,
		Registry:   registry,
		Dispatcher: d,
		Queue:      queueClient,
		Log:        zlog,
		JWTSecret:  jwtSecret,
	})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveDone := make(chan error, 1)
	go func() { serveDone <- srv.ListenAndServe() }()
	zlog.Info("server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		zlog.Info("shutdown signal received")
	case err := <-serveDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server stopped", zap.Error(err))
		}
	case err := <-workerDone:
		if err != nil {
			zlog.Error("worker stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	if err := queueServer.Stop(shutdownCtx); err != nil {
		zlog.Error("worker shutdown", zap.Error(err))
	}
}
