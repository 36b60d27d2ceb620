package user

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{Service: service}
}

// GetSession returns the account of the currently logged-in user.
func (c *UserController) GetSession(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	user, err := c.Service.GetUserByID(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(user)
}

// GetUsers godoc
func (c *UserController) GetUsers(ctx *fiber.Ctx) error {
	users, err := c.Service.GetUsers(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(users)
}

// GetUser godoc
func (c *UserController) GetUser(ctx *fiber.Ctx) error {
	user, err := c.Service.GetUserByUsername(ctx.UserContext(), ctx.Params("username"))
	if err != nil {
		return err
	}
	return ctx.JSON(user)
}

// UpdateUser godoc
func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.Service.UpdateUser(ctx.UserContext(), userID, body.Username, body.Password); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "User updated successfully!"})
}

// DeleteUser godoc
func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	if err := c.Service.DeleteUser(ctx.UserContext(), userID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "User deleted successfully!"})
}
