package group

import (
	"closetshare/internal/features/notification"
	"closetshare/internal/middleware"
	"closetshare/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GroupController struct {
	Service             GroupService
	NotificationService notification.NotificationService
}

func NewGroupController(service GroupService, notificationService notification.NotificationService) *GroupController {
	return &GroupController{Service: service, NotificationService: notificationService}
}

// notifyGroupEvent is best-effort: a failed notification never fails the
// request that triggered it.
func (c *GroupController) notifyGroupEvent(ctx *fiber.Ctx, userID, groupID primitive.ObjectID, title, message string) {
	group, err := c.Service.GetGroupByID(ctx.UserContext(), groupID)
	if err != nil {
		return
	}
	c.NotificationService.Notify(ctx.UserContext(), userID, title,
		message+" "+group.Name, notification.NotificationTypeRequest, "")
}

func paramID(ctx *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ctx.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// CreateGroup godoc
func (c *GroupController) CreateGroup(ctx *fiber.Ctx) error {
	creator, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	var body struct {
		Name    string   `json:"name" validate:"required"`
		Members []string `json:"members"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}

	members := make([]primitive.ObjectID, 0, len(body.Members))
	for _, hex := range body.Members {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid member id")
		}
		members = append(members, id)
	}

	created, err := c.Service.CreateGroup(ctx.UserContext(), creator, body.Name, members)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":   "Group " + created.Name + " successfully created!",
		"group": created,
	})
}

// UpdateGroup godoc
func (c *GroupController) UpdateGroup(ctx *fiber.Ctx) error {
	modifier, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := c.Service.UpdateName(ctx.UserContext(), modifier, groupID, body.Name); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "The group's name was successfully updated to " + body.Name + "!"})
}

// DeleteGroup godoc
func (c *GroupController) DeleteGroup(ctx *fiber.Ctx) error {
	modifier, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.Service.DeleteGroup(ctx.UserContext(), modifier, groupID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Group deleted successfully!"})
}

// GetGroups godoc
func (c *GroupController) GetGroups(ctx *fiber.Ctx) error {
	groups, err := c.Service.GetGroups(ctx.UserContext(), "")
	if err != nil {
		return err
	}
	return ctx.JSON(groups)
}

// GetGroupsByName godoc
func (c *GroupController) GetGroupsByName(ctx *fiber.Ctx) error {
	groups, err := c.Service.GetGroups(ctx.UserContext(), ctx.Params("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(groups)
}

// GetGroupsOfUser godoc
func (c *GroupController) GetGroupsOfUser(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	groups, err := c.Service.GetGroupsByMember(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(groups)
}

// GetGroup godoc
func (c *GroupController) GetGroup(ctx *fiber.Ctx) error {
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	group, err := c.Service.GetGroupByID(ctx.UserContext(), groupID)
	if err != nil {
		return err
	}
	return ctx.JSON(group)
}

// RemoveMember godoc
func (c *GroupController) RemoveMember(ctx *fiber.Ctx) error {
	modifier, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}

	if err := c.Service.RemoveMember(ctx.UserContext(), modifier, groupID, userID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Member with id " + userID.Hex() + " was successfully removed from the group!"})
}

// GetRequestsByGroup godoc
func (c *GroupController) GetRequestsByGroup(ctx *fiber.Ctx) error {
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	requests, err := c.Service.GetRequestsByGroup(ctx.UserContext(), groupID)
	if err != nil {
		return err
	}
	return ctx.JSON(requests)
}

// GetRequestsByUser godoc
func (c *GroupController) GetRequestsByUser(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	requests, err := c.Service.GetRequestsByUser(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(requests)
}

// SendRequest godoc
func (c *GroupController) SendRequest(ctx *fiber.Ctx) error {
	creator, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var body struct {
		UserID string `json:"user_id" validate:"required"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	if err := c.Service.SendRequest(ctx.UserContext(), creator, userID, groupID); err != nil {
		return err
	}

	if creator != userID {
		c.notifyGroupEvent(ctx, userID, groupID, "Group invitation",
			"You have been invited to join group")
	}
	return ctx.JSON(fiber.Map{"msg": "Sent request!"})
}

type requestDecisionBody struct {
	UserID  string `json:"user_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required"`
}

func (b requestDecisionBody) ids() (primitive.ObjectID, primitive.ObjectID, error) {
	userID, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	groupID, err := primitive.ObjectIDFromHex(b.GroupID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid group id")
	}
	return userID, groupID, nil
}

// AcceptRequest godoc
func (c *GroupController) AcceptRequest(ctx *fiber.Ctx) error {
	modifier, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	var body requestDecisionBody
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	userID, groupID, err := body.ids()
	if err != nil {
		return err
	}

	if err := c.Service.AcceptRequest(ctx.UserContext(), modifier, userID, groupID); err != nil {
		return err
	}

	if modifier != userID {
		c.notifyGroupEvent(ctx, userID, groupID, "Request accepted",
			"You are now a member of group")
	}
	return ctx.JSON(fiber.Map{"msg": "Member with id " + userID.Hex() + " was successfully added to the group!"})
}

// RejectRequest godoc
func (c *GroupController) RejectRequest(ctx *fiber.Ctx) error {
	modifier, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}

	var body requestDecisionBody
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	userID, groupID, err := body.ids()
	if err != nil {
		return err
	}

	if err := c.Service.RejectRequest(ctx.UserContext(), modifier, userID, groupID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Rejected request!"})
}

// RemoveRequest withdraws the session user's own pending request for the
// group in the path.
func (c *GroupController) RemoveRequest(ctx *fiber.Ctx) error {
	userID, err := middleware.SessionUser(ctx)
	if err != nil {
		return err
	}
	groupID, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.Service.RemoveRequest(ctx.UserContext(), userID, groupID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"msg": "Removed request!"})
}
