package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ppiankov/diatax/internal/corpus"
	"github.com/ppiankov/diatax/internal/llm"
	"github.com/ppiankov/diatax/internal/taxonomy"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, corpus.ErrCallNotFound), errors.Is(err, taxonomy.ErrKeywordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, taxonomy.ErrUnknownCategory):
		return fiber.StatusBadRequest
	case errors.Is(err, llm.ErrDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func jsonFailure(c fiber.Ctx, err error) error {
	return jsonError(c, statusFor(err), err.Error())
}
