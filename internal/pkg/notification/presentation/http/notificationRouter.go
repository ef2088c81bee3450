package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "mindline/internal/infrastructure/queue/port"
	"mindline/internal/pkg/notification/application/dispatcher"
	"mindline/internal/pkg/notification/presentation/controller"
)

// RegisterRoutes registers the notification endpoints under the given router
// group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, d *dispatcher.Dispatcher, queue qport.Client) {
	createCtl := controller.NewCreateNotificationController(d)
	listCtl := controller.NewListNotificationsController(pool)
	getCtl := controller.NewGetNotificationController(pool)
	markReadCtl := controller.NewMarkNotificationReadController(pool)
	deleteCtl := controller.NewDeleteNotificationController(pool)
	clearCtl := controller.NewClearNotificationsController(pool)
	broadcastCtl := controller.NewBroadcastNotificationController(queue)

	// POST /api/v1/notifications -> persist and push to the caller
	g.POST("/notifications", createCtl.Handle())

	// GET /api/v1/notifications -> the caller's feed, newest first
	g.GET("/notifications", listCtl.Handle())

	// DELETE /api/v1/notifications -> clear the caller's feed
	g.DELETE("/notifications", clearCtl.Handle())

	// POST /api/v1/admin/notifications/broadcast -> queue fan-out to many users
	g.POST("/admin/notifications/broadcast", broadcastCtl.Handle())

	// GET /api/v1/notifications/:id -> a single record owned by the caller
	g.GET("/notifications/:id", getCtl.Handle())

	// PATCH /api/v1/notifications/:id/read -> flip the read flag
	g.PATCH("/notifications/:id/read", markReadCtl.Handle())

	// DELETE /api/v1/notifications/:id -> remove one record
	g.DELETE("/notifications/:id", deleteCtl.Handle())
}
