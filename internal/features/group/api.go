package group

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type GroupApi struct {
	controller *GroupController
}

func NewGroupApi(controller *GroupController) *GroupApi {
	return &GroupApi{controller: controller}
}

// Setup registers all group-related routes
func (h *GroupApi) Setup(app *fiber.App) {
	app.Get("/api/groups", h.controller.GetGroups)
	app.Get("/api/groups/name/:name", h.controller.GetGroupsByName)
	app.Get("/api/groups/user/:id", h.controller.GetGroupsOfUser)
	app.Get("/api/groups/user/:id/requests", h.controller.GetRequestsByUser)
	app.Get("/api/group/:id", h.controller.GetGroup)
	app.Get("/api/group/:id/requests", h.controller.GetRequestsByGroup)

	authed := app.Group("/api", middleware.AuthMiddleware())
	authed.Post("/groups", h.controller.CreateGroup)
	authed.Patch("/groups/:id", h.controller.UpdateGroup)
	authed.Delete("/groups/:id", h.controller.DeleteGroup)
	authed.Post("/group/:id", h.controller.SendRequest)
	authed.Delete("/group/:id/user/:userId", h.controller.RemoveMember)
	authed.Put("/group/accept", h.controller.AcceptRequest)
	authed.Put("/group/reject", h.controller.RejectRequest)
	authed.Delete("/group/requests/:id", h.controller.RemoveRequest)
}
