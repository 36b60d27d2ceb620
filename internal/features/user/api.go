package user

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
}

func NewUserApi(controller *UserController) *UserApi {
	return &UserApi{controller: controller}
}

// Setup registers all user-related routes
func (h *UserApi) Setup(app *fiber.App) {
	app.Get("/api/users", h.controller.GetUsers)
	app.Get("/api/users/:username", h.controller.GetUser)

	authed := app.Group("/api", middleware.AuthMiddleware())
	authed.Get("/session", h.controller.GetSession)
	authed.Patch("/users", h.controller.UpdateUser)
	authed.Delete("/users", h.controller.DeleteUser)
}
