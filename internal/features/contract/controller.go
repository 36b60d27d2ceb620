package contract

import (
	"fmt"

	"closetshare/internal/features/closet"
	"closetshare/internal/features/notification"
	"closetshare/internal/features/user"
	"closetshare/internal/middleware"
	"closetshare/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContractController struct {
	Service             ContractService
	ClothingItemService closet.ClothingItemService
	UserService         user.UserService
	NotificationService notification.NotificationService
}

func NewContractController(
	service ContractService,
	clothingItemService closet.ClothingItemService,
	userService user.UserService,
	notificationService notification.NotificationService,
) *ContractController {
	return &ContractController{
		Service:             service,
		ClothingItemService: clothingItemService,
		UserService:         userService,
		NotificationService: notificationService,
	}
}

func paramID(ctx *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// ProposeContract godoc
// The session user is the borrower; the item's owner fills the other side.
func (c *ContractController) ProposeContract(ctx *fiber.Ctx) error {
	borrower, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	var body struct {
		Item       string `json:"item" validate:"required"`
		BorrowDate string `json:"borrowDate" validate:"required"`
		ReturnDate string `json:"returnDate" validate:"required"`
		Notes      string `json:"notes"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}

	itemID, err := primitive.ObjectIDFromHex(body.Item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
	}
	borrowDate, err := parseDate(body.BorrowDate)
	if err != nil {
		return err
	}
	returnDate, err := parseDate(body.ReturnDate)
	if err != nil {
		return err
	}

	owner, err := c.ClothingItemService.GetOwner(ctx.UserContext(), itemID)
	if err != nil {
		return err
	}

	contract, err := c.Service.Propose(ctx.UserContext(), owner, borrower, itemID, borrowDate, returnDate, body.Notes)
	if err != nil {
		return err
	}

	borrowerUser, err := c.UserService.GetUserByID(ctx.UserContext(), borrower)
	if err == nil {
		c.NotificationService.Notify(ctx.UserContext(), owner,
			"New contract proposal",
			fmt.Sprintf("%s proposed a lending contract for one of your items.", borrowerUser.Username),
			notification.NotificationTypeContract, "")
	}

	view, err := formatContract(ctx.UserContext(), c.UserService, contract)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":      MsgProposed,
		"contract": view,
	})
}

// UpdateContract godoc
func (c *ContractController) UpdateContract(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.Service.IsInvolved(ctx.UserContext(), userID, id); err != nil {
		return err
	}

	patch := map[string]any{}
	if err := ctx.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := c.Service.Modify(ctx.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": msg})
}

// FinalizeContract godoc
func (c *ContractController) FinalizeContract(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.Service.IsInvolved(ctx.UserContext(), userID, id); err != nil {
		return err
	}

	msg, err := c.Service.Finalize(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": msg})
}

// DeleteContract godoc
func (c *ContractController) DeleteContract(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.Service.IsInvolved(ctx.UserContext(), userID, id); err != nil {
		return err
	}

	if err := c.Service.Remove(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": MsgDeleted})
}

// GetUserContracts godoc
func (c *ContractController) GetUserContracts(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "user")
	if err != nil {
		return err
	}
	contracts, err := c.Service.GetAllUserContracts(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.respondList(ctx, contracts)
}

// GetContractsByOwner godoc
func (c *ContractController) GetContractsByOwner(ctx *fiber.Ctx) error {
	owner, err := paramID(ctx, "owner")
	if err != nil {
		return err
	}
	contracts, err := c.Service.GetContractsByOwner(ctx.UserContext(), owner)
	if err != nil {
		return err
	}
	return c.respondList(ctx, contracts)
}

// GetContractsByBorrower godoc
func (c *ContractController) GetContractsByBorrower(ctx *fiber.Ctx) error {
	borrower, err := paramID(ctx, "borrower")
	if err != nil {
		return err
	}
	contracts, err := c.Service.GetContractsByBorrower(ctx.UserContext(), borrower)
	if err != nil {
		return err
	}
	return c.respondList(ctx, contracts)
}

// GetContractFromItem godoc
func (c *ContractController) GetContractFromItem(ctx *fiber.Ctx) error {
	item, err := paramID(ctx, "item")
	if err != nil {
		return err
	}
	contract, err := c.Service.GetContractByItem(ctx.UserContext(), item)
	if err != nil {
		return err
	}
	view, err := formatContract(ctx.UserContext(), c.UserService, contract)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"contract": view})
}

func (c *ContractController) respondList(ctx *fiber.Ctx, contracts []Contract) error {
	views, err := formatContracts(ctx.UserContext(), c.UserService, contracts)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"contracts": views})
}
