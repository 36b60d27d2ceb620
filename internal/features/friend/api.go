package friend

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FriendApi struct {
	controller *FriendController
}

func NewFriendApi(controller *FriendController) *FriendApi {
	return &FriendApi{controller: controller}
}

// Setup registers all friend-related routes
func (h *FriendApi) Setup(app *fiber.App) {
	authed := app.Group("/api", middleware.AuthMiddleware())

	authed.Get("/friends", h.controller.GetFriends)
	authed.Delete("/friends/:friend", h.controller.RemoveFriend)
	authed.Get("/friend/requests", h.controller.GetRequests)
	authed.Post("/friend/requests/:to", h.controller.SendRequest)
	authed.Delete("/friend/requests/:to", h.controller.RemoveRequest)
	authed.Put("/friend/accept/:from", h.controller.AcceptRequest)
	authed.Put("/friend/reject/:from", h.controller.RejectRequest)
}
