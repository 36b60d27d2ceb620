package friend

import (
	"context"

	"closetshare/internal/features/user"
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendRequestView substitutes party ids with usernames.
type FriendRequestView struct {
	ID     primitive.ObjectID `json:"id"`
	From   string             `json:"from"`
	To     string             `json:"to"`
	Status RequestStatus      `json:"status"`
}

type FriendController struct {
	Service     FriendService
	UserService user.UserService
}

func NewFriendController(service FriendService, userService user.UserService) *FriendController {
	return &FriendController{Service: service, UserService: userService}
}

func paramID(ctx *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func formatRequests(ctx context.Context, users user.UserService, requests []FriendRequest) ([]FriendRequestView, error) {
	ids := make([]primitive.ObjectID, 0, len(requests)*2)
	for _, r := range requests {
		ids = append(ids, r.From, r.To)
	}
	names, err := users.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]FriendRequestView, len(requests))
	for i, r := range requests {
		views[i] = FriendRequestView{
			ID:     r.ID,
			From:   names[i*2],
			To:     names[i*2+1],
			Status: r.Status,
		}
	}
	return views, nil
}

// GetFriends godoc
func (c *FriendController) GetFriends(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	friends, err := c.Service.GetFriends(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	names, err := c.UserService.IDsToUsernames(ctx.UserContext(), friends)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"friends": names})
}

// RemoveFriend godoc
func (c *FriendController) RemoveFriend(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	friendID, err := paramID(ctx, "friend")
	if err != nil {
		return err
	}

	if err := c.Service.RemoveFriend(ctx.UserContext(), userID, friendID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Friend removed!"})
}

// GetRequests godoc
func (c *FriendController) GetRequests(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	requests, err := c.Service.GetRequests(ctx.UserContext(), userID)
	if err != nil {
		return err
	}

	views, err := formatRequests(ctx.UserContext(), c.UserService, requests)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"requests": views})
}

// SendRequest godoc
func (c *FriendController) SendRequest(ctx *fiber.Ctx) error {
	from, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	to, err := paramID(ctx, "to")
	if err != nil {
		return err
	}

	if _, err := c.Service.SendRequest(ctx.UserContext(), from, to); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "Friend request sent!"})
}

// RemoveRequest godoc
func (c *FriendController) RemoveRequest(ctx *fiber.Ctx) error {
	from, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	to, err := paramID(ctx, "to")
	if err != nil {
		return err
	}

	if err := c.Service.RemoveRequest(ctx.UserContext(), from, to); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Friend request withdrawn!"})
}

// AcceptRequest godoc
func (c *FriendController) AcceptRequest(ctx *fiber.Ctx) error {
	to, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	from, err := paramID(ctx, "from")
	if err != nil {
		return err
	}

	if err := c.Service.AcceptRequest(ctx.UserContext(), to, from); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Friend request accepted!"})
}

// RejectRequest godoc
func (c *FriendController) RejectRequest(ctx *fiber.Ctx) error {
	to, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	from, err := paramID(ctx, "from")
	if err != nil {
		return err
	}

	if err := c.Service.RejectRequest(ctx.UserContext(), to, from); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Friend request rejected!"})
}
