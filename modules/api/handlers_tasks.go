package api

import (
	"strconv"

	"github.com/example/task-manager/domain/apperror"
	taskmod "github.com/example/task-manager/modules/task"
	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /api/v1/tasks/.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if req.TaskListID == "" {
		return respondValidation(c, "task_list_id is required")
	}

	priority, err := parsePriority(req.Priority)
	if err != nil {
		return respondValidation(c, err.Error())
	}

	resp, err := h.tasks.Create(c.UserContext(), req.TaskListID, taskmod.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListTasks handles GET /api/v1/tasks/.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	taskListID := c.Query("task_list_id")
	if taskListID == "" {
		return respondValidation(c, "task_list_id is required")
	}

	status, err := parseStatus(c.Query("status"))
	if err != nil {
		return respondValidation(c, err.Error())
	}
	priority, err := parsePriority(c.Query("priority"))
	if err != nil {
		return respondValidation(c, err.Error())
	}

	var assignedTo *string
	if v := c.Query("assigned_to"); v != "" {
		assignedTo = &v
	}
	overdueOnly := false
	if v := c.Query("overdue_only"); v != "" {
		overdueOnly, err = strconv.ParseBool(v)
		if err != nil {
			return respondValidation(c, "overdue_only must be a boolean")
		}
	}

	skip, limit, err := pagination(c)
	if err != nil {
		return respondValidation(c, err.Error())
	}

	resp, err := h.tasks.List(c.UserContext(), taskListID, taskmod.Filters{
		Status:      status,
		Priority:    priority,
		AssignedTo:  assignedTo,
		OverdueOnly: overdueOnly,
	}, skip, limit, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask handles GET /api/v1/tasks/{id}.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	resp, err := h.tasks.Get(c.UserContext(), c.Params("id"), u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask handles PUT /api/v1/tasks/{id}.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	in := taskmod.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		priority, err := parsePriority(*req.Priority)
		if err != nil {
			return respondValidation(c, err.Error())
		}
		in.Priority = priority
	}

	resp, err := h.tasks.Update(c.UserContext(), c.Params("id"), in, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTaskStatus handles PATCH /api/v1/tasks/{id}/status.
func (h *Handlers) UpdateTaskStatus(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	status, err := parseStatus(req.Status)
	if err != nil || status == nil {
		return respondValidation(c, "Invalid status '"+req.Status+"'")
	}

	resp, err := h.tasks.UpdateStatus(c.UserContext(), c.Params("id"), *status, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// AssignTask handles POST /api/v1/tasks/{id}/assign/{user_id}.
func (h *Handlers) AssignTask(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	resp, err := h.tasks.Assign(c.UserContext(), c.Params("id"), c.Params("user_id"), u.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask handles DELETE /api/v1/tasks/{id}.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	id := c.Params("id")
	removed, err := h.tasks.Delete(c.UserContext(), id, u.ID)
	if err != nil {
		return respondError(c, err)
	}
	if !removed {
		return respondError(c, apperror.NotFound("Task", id))
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Task deleted successfully"})
}
