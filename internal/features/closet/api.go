package closet

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ClothingItemApi struct {
	controller *ClothingItemController
}

func NewClothingItemApi(controller *ClothingItemController) *ClothingItemApi {
	return &ClothingItemApi{controller: controller}
}

// Setup registers all clothing item routes
func (h *ClothingItemApi) Setup(app *fiber.App) {
	app.Get("/api/clothingItems", h.controller.GetClothingItems)
	app.Get("/api/store/:owner", h.controller.GetStore)
	app.Get("/api/borrowedItems/:borrower", h.controller.GetBorrowedItems)

	authed := app.Group("/api", middleware.AuthMiddleware())
	authed.Get("/borrowableItems", h.controller.GetBorrowableItems)
	authed.Post("/clothingItems", h.controller.CreateClothingItem)
	authed.Patch("/clothingItems/:id", h.controller.UpdateClothingItem)
	authed.Delete("/clothingItems/:id", h.controller.DeleteClothingItem)
	authed.Patch("/borrow/clothingItems/:id", h.controller.Borrow)
	authed.Patch("/return/clothingItems/:id", h.controller.Return)
}
