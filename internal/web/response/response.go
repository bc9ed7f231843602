// Package response writes the JSON envelope shared by every API endpoint.
package response

import "github.com/gofiber/fiber/v2"

// Body is the JSON envelope of every API response.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a successful response with the given status.
func OK(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes a failed response. kind is a short machine readable error class.
func Fail(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(Body{
		Success: false,
		Message: message,
		Error:   kind,
	})
}

// Unauthorized writes the response for requests without a valid session.
func Unauthorized(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusUnauthorized, "unauthorized", "Authentication required")
}

// Forbidden writes the response for requests lacking a permission.
func Forbidden(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusForbidden, "forbidden", "You don't have permission to access this resource")
}

// Internal writes a generic failure that discloses nothing about the cause.
func Internal(c *fiber.Ctx) error {
	return Fail(c, fiber.StatusInternalServerError, "internal_error", "An internal error occurred. Please try again later.")
}
