package handlers

import (
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/services"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	user, err := h.userService.Profile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.OK(dto.NewUserResponse(user)))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, reward, err := h.userService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.OK(dto.ProfileUpdateResponse{
		User:         dto.NewUserResponse(user),
		CreditReward: reward,
		Credits:      user.Credits,
	}))
}

func (h *UserHandler) Credits(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	credits, err := h.userService.Credits(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.OK(dto.CreditsResponse{Credits: credits}))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(dto.OK(out))
}

func (h *UserHandler) SetCredits(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Credits must be a positive number")
	}
	if err := validation.Struct(&req); err != nil {
		return badRequest(c, "Credits must be a positive number")
	}

	user, err := h.userService.SetCredits(c.UserContext(), userID, *req.Credits)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.OK(dto.AdminCreditsResponse{
		ID:       user.ID,
		Username: user.Username,
		Credits:  user.Credits,
	}))
}
