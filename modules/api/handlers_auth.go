package api

import (
	"encoding/json"

	"github.com/example/task-manager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskLists     TaskListService
	tasks         TaskService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.AuthPort, taskLists TaskListService, tasks TaskService) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		taskLists:     taskLists,
		tasks:         tasks,
	}
}

// Register handles POST /auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return respondValidation(c, "Email, username, and password are required")
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	}
	var resp auth.UserResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Login handles POST /auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if req.EmailOrUsername == "" || req.Password == "" {
		return respondValidation(c, "Email or username and password are required")
	}

	authReq := auth.LoginRequest{
		EmailOrUsername: req.EmailOrUsername,
		Password:        req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Profile handles GET /api/v1/profile. Protected.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}
	return c.Status(fiber.StatusOK).JSON(u)
}
