package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mindline/internal/infrastructure/realtime"
	"mindline/internal/pkg/chat/application/usecase"
	"mindline/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers chat-related endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, guard usecase.SessionGuard, registry *realtime.Registry, log *zap.Logger) {
	createCtl := controller.NewCreateConversationController(pool, guard)
	listChatsCtl := controller.NewListChatsController(pool)
	sendMsgCtl := controller.NewSendMessageController(pool, guard)
	listMsgCtl := controller.NewListMessagesController(pool)
	socketCtl := controller.NewChatSocketController(pool, registry, log)

	// POST /api/v1/chat -> create or fetch the session's conversation
	g.POST("/chat", createCtl.Handle())

	// GET /api/v1/chat -> list the caller's conversations
	g.GET("/chat", listChatsCtl.Handle())

	// POST /api/v1/chat/:conversationId/messages -> append a message
	g.POST("/chat/:conversationId/messages", sendMsgCtl.Handle())

	// GET /api/v1/chat/:conversationId/messages -> decrypted history
	g.GET("/chat/:conversationId/messages", listMsgCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for presence and live push
	g.GET("/chat/ws", socketCtl.Handle())
}
