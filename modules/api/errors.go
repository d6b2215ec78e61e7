package api

import (
	"log"

	"github.com/example/task-manager/domain/apperror"
	"github.com/gofiber/fiber/v2"
)

// statusForKind maps the domain error taxonomy to HTTP status codes.
func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperror.KindAuthorization:
		return fiber.StatusForbidden
	case apperror.KindValidation:
		return fiber.StatusUnprocessableEntity
	case apperror.KindDuplicate:
		return fiber.StatusBadRequest
	case apperror.KindBusinessRule:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// respondError writes the structured error body for a service error.
// Errors that crossed the service container arrive as plain text and are
// recovered by their code prefix.
func respondError(c *fiber.Ctx, err error) error {
	appErr, ok := apperror.From(err)
	if !ok {
		appErr, ok = apperror.Parse(err.Error())
	}
	if ok {
		return c.Status(statusForKind(appErr.Kind)).JSON(ErrorResponse{
			Message:   appErr.Message,
			ErrorCode: appErr.Code,
		})
	}

	// Log the real error but keep it out of the response.
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message:   "An internal error occurred",
		ErrorCode: "INTERNAL_ERROR",
	})
}

// respondValidation writes a 422 with the validation code.
func respondValidation(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: apperror.CodeValidation,
	})
}

// respondBadBody writes a 400 for an unparseable request body.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message:   "Invalid request body",
		ErrorCode: apperror.CodeValidation,
	})
}
