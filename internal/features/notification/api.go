package notification

import (
	"closetshare/internal/common/api"
	"closetshare/internal/middleware"
	"closetshare/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type NotificationApi struct {
	controller *NotificationController
	hub        *Hub
	logger     *zap.Logger
}

func NewNotificationApi(controller *NotificationController, hub *Hub, logger *zap.Logger) api.Route {
	return &NotificationApi{
		controller: controller,
		hub:        hub,
		logger:     logger,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications", middleware.AuthMiddleware())

	group.Get("/", h.controller.List)
	group.Get("/unread-count", h.controller.GetUnreadCount)
	group.Put("/:id/read", h.controller.MarkAsRead)
	group.Post("/mark-all-read", h.controller.MarkAllAsRead)

	// Browsers cannot set headers on websocket upgrades, so the token
	// rides in the query string instead.
	app.Get("/api/ws", websocket.New(h.handleWebSocket))
}

func (h *NotificationApi) handleWebSocket(c *websocket.Conn) {
	claims, err := utils.ValidateToken(c.Query("token"))
	if err != nil {
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid token"))
		c.Close()
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.Close()
		return
	}

	h.hub.Register(userID, c)
	defer func() {
		h.hub.Unregister(userID, c)
		c.Close()
	}()

	// Drain the connection until the client goes away. Server-to-client
	// traffic happens through the hub.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			h.logger.Debug("websocket closed",
				zap.String("userId", userID.Hex()),
				zap.Error(err))
			break
		}
	}
}
