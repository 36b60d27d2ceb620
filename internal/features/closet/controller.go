package closet

import (
	"closetshare/internal/features/user"
	"closetshare/internal/middleware"
	"closetshare/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClothingItemController struct {
	Service     ClothingItemService
	UserService user.UserService
}

func NewClothingItemController(service ClothingItemService, userService user.UserService) *ClothingItemController {
	return &ClothingItemController{Service: service, UserService: userService}
}

func paramID(ctx *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// CreateClothingItem godoc
func (c *ClothingItemController) CreateClothingItem(ctx *fiber.Ctx) error {
	owner, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	var body struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}

	item, err := c.Service.Create(ctx.UserContext(), owner, body.Name, body.Description, body.ImageURL)
	if err != nil {
		return err
	}

	view, err := formatItem(ctx.UserContext(), c.UserService, item)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":          "Clothing Item successfully created!",
		"clothingItem": view,
	})
}

// GetClothingItems lists all items, or one owner's items when the owner
// query parameter carries a username.
func (c *ClothingItemController) GetClothingItems(ctx *fiber.Ctx) error {
	var items []ClothingItem

	if owner := ctx.Query("owner"); owner != "" {
		ownerUser, err := c.UserService.GetUserByUsername(ctx.UserContext(), owner)
		if err != nil {
			return err
		}
		items, err = c.Service.GetClothingItems(ctx.UserContext(), ownerUser.ID)
		if err != nil {
			return err
		}
	} else {
		var err error
		items, err = c.Service.GetAllClothingItems(ctx.UserContext())
		if err != nil {
			return err
		}
	}

	views, err := formatItems(ctx.UserContext(), c.UserService, items)
	if err != nil {
		return err
	}
	return ctx.JSON(views)
}

// GetStore lists the items of the storefront owner in the path.
func (c *ClothingItemController) GetStore(ctx *fiber.Ctx) error {
	owner, err := c.UserService.GetUserByUsername(ctx.UserContext(), ctx.Params("owner"))
	if err != nil {
		return err
	}

	items, err := c.Service.GetClothingItems(ctx.UserContext(), owner.ID)
	if err != nil {
		return err
	}

	views, err := formatItems(ctx.UserContext(), c.UserService, items)
	if err != nil {
		return err
	}
	return ctx.JSON(views)
}

// GetBorrowedItems godoc
func (c *ClothingItemController) GetBorrowedItems(ctx *fiber.Ctx) error {
	borrower, err := c.UserService.GetUserByUsername(ctx.UserContext(), ctx.Params("borrower"))
	if err != nil {
		return err
	}

	items, err := c.Service.GetBorrowedItems(ctx.UserContext(), borrower.ID)
	if err != nil {
		return err
	}

	views, err := formatItems(ctx.UserContext(), c.UserService, items)
	if err != nil {
		return err
	}
	return ctx.JSON(views)
}

// GetBorrowableItems lists items the session user could borrow: nobody is
// borrowing them and the user does not own them.
func (c *ClothingItemController) GetBorrowableItems(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	items, err := c.Service.GetBorrowableItems(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	views, err := formatItems(ctx.UserContext(), c.UserService, items)
	if err != nil {
		return err
	}
	return ctx.JSON(views)
}

// UpdateClothingItem godoc
func (c *ClothingItemController) UpdateClothingItem(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	itemID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var patch map[string]any
	if err := ctx.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.Service.IsOwner(ctx.UserContext(), userID, itemID); err != nil {
		return err
	}
	if err := c.Service.Update(ctx.UserContext(), itemID, patch); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Clothing item successfully updated!"})
}

// DeleteClothingItem godoc
func (c *ClothingItemController) DeleteClothingItem(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	itemID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.Service.IsOwner(ctx.UserContext(), userID, itemID); err != nil {
		return err
	}
	if err := c.Service.Remove(ctx.UserContext(), itemID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Clothing item deleted successfully!"})
}

// Borrow godoc
func (c *ClothingItemController) Borrow(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	itemID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.Service.Borrow(ctx.UserContext(), itemID, userID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Clothing item successfully borrowed!"})
}

// Return godoc
func (c *ClothingItemController) Return(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	itemID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.Service.IsBorrower(ctx.UserContext(), userID, itemID); err != nil {
		return err
	}
	if err := c.Service.Return(ctx.UserContext(), itemID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Clothing item successfully returned!"})
}
