package api

import (
	"errors"
	"strconv"

	taskdomain "github.com/example/task-manager/domain/task"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// pagination reads the skip/limit query parameters with the API defaults.
func pagination(c *fiber.Ctx) (skip, limit int, err error) {
	skip, err = queryInt(c, "skip", 0)
	if err != nil || skip < 0 {
		return 0, 0, errors.New("skip must be a non-negative integer")
	}
	limit, err = queryInt(c, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, errors.New("limit must be an integer between 1 and 1000")
	}
	return skip, limit, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// parseStatus converts a query/body value into a task status.
func parseStatus(s string) (*taskdomain.Status, error) {
	if s == "" {
		return nil, nil
	}
	status := taskdomain.Status(s)
	if !status.Valid() {
		return nil, errors.New("Invalid status '" + s + "'")
	}
	return &status, nil
}

// parsePriority converts a query/body value into a task priority.
func parsePriority(s string) (*taskdomain.Priority, error) {
	if s == "" {
		return nil, nil
	}
	priority := taskdomain.Priority(s)
	if !priority.Valid() {
		return nil, errors.New("Invalid priority '" + s + "'")
	}
	return &priority, nil
}
