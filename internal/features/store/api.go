package store

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StoreApi struct {
	controller *StoreController
}

func NewStoreApi(controller *StoreController) *StoreApi {
	return &StoreApi{controller: controller}
}

func (h *StoreApi) Setup(app *fiber.App) {
	authed := app.Group("/api", middleware.AuthMiddleware())
	authed.Patch("/store/add/:itemId", h.controller.AddItem)
	authed.Patch("/store/remove/:itemId", h.controller.RemoveItem)
}
