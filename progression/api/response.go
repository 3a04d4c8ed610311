package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *Error    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func sendSuccess(c *fiber.Ctx, data any, message string) error {
	return c.Status(http.StatusOK).JSON(Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func sendError(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(Response{
		Success:   false,
		Error:     &Error{Code: code, Message: message, Details: details},
		Timestamp: time.Now().UTC(),
	})
}

// sendAppError maps an error kind to its HTTP status.
func sendAppError(c *fiber.Ctx, err error) error {
	var (
		ve *apperr.ValidationError
		ae *apperr.AuthorizationError
		ce *apperr.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		var details map[string]string
		if ve.Field != "" {
			details = map[string]string{ve.Field: ve.Message}
		}
		return sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), details)
	case apperr.IsNotFound(err):
		return sendError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.As(err, &ae):
		if ae.Unauthenticated {
			return sendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		}
		return sendError(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.As(err, &ce):
		return sendError(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case apperr.IsStorage(err), errors.Is(err, context.DeadlineExceeded):
		slog.Error("Storage unavailable",
			slog.String("type", "http"),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return sendError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable", nil)
	default:
		slog.Error("Unhandled error",
			slog.String("type", "http"),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return sendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error", nil)
	}
}

// errorHandler answers fiber's own errors, such as unknown routes, in the
// envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := strings.ToUpper(strings.ReplaceAll(http.StatusText(fe.Code), " ", "_"))
		return sendError(c, fe.Code, code, fe.Message, nil)
	}
	return sendAppError(c, err)
}
