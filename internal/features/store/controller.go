package store

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreController struct {
	Service StoreService
}

func NewStoreController(service StoreService) *StoreController {
	return &StoreController{Service: service}
}

func paramID(ctx *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// AddItem godoc
func (c *StoreController) AddItem(ctx *fiber.Ctx) error {
	owner, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	itemID, err := paramID(ctx, "itemId")
	if err != nil {
		return err
	}

	if err := c.Service.AddItem(ctx.UserContext(), owner, itemID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Item added to store!"})
}

// RemoveItem godoc
func (c *StoreController) RemoveItem(ctx *fiber.Ctx) error {
	owner, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	itemID, err := paramID(ctx, "itemId")
	if err != nil {
		return err
	}

	if err := c.Service.RemoveItem(ctx.UserContext(), owner, itemID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Item removed from store!"})
}
