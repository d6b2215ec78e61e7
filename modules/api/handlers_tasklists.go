package api

import (
	"github.com/example/task-manager/domain/apperror"
	tasklistmod "github.com/example/task-manager/modules/tasklist"
	"github.com/gofiber/fiber/v2"
)

// CreateTaskList handles POST /api/v1/task-lists/.
func (h *Handlers) CreateTaskList(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskListCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	resp, err := h.taskLists.Create(c.UserContext(), tasklistmod.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	}, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListTaskLists handles GET /api/v1/task-lists/.
func (h *Handlers) ListTaskLists(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	skip, limit, err := pagination(c)
	if err != nil {
		return respondValidation(c, err.Error())
	}

	resp, err := h.taskLists.ListForOwner(c.UserContext(), u.ID, skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTaskList handles GET /api/v1/task-lists/{id}.
func (h *Handlers) GetTaskList(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	resp, err := h.taskLists.Get(c.UserContext(), c.Params("id"), u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTaskList handles PUT /api/v1/task-lists/{id}.
func (h *Handlers) UpdateTaskList(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskListUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	resp, err := h.taskLists.Update(c.UserContext(), c.Params("id"), tasklistmod.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	}, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTaskList handles DELETE /api/v1/task-lists/{id}.
func (h *Handlers) DeleteTaskList(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	id := c.Params("id")
	removed, err := h.taskLists.Delete(c.UserContext(), id, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	if !removed {
		return respondError(c, apperror.NotFound("TaskList", id))
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Task list deleted successfully"})
}
