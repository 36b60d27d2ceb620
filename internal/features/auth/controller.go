package auth

import (
	"closetshare/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type credentialsBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var body credentialsBody
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}

	newUser, err := c.AuthService.Register(ctx.UserContext(), body.Username, body.Password)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "User successfully created!",
		"user": newUser,
	})
}

// Login godoc
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var body credentialsBody
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}

	token, err := c.AuthService.Login(ctx.UserContext(), body.Username, body.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"msg":   "Logged in!",
		"token": token,
	})
}
