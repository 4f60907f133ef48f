package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/zdziszkee/swift-codes-registry/internal/services"
)

// SwiftHandler handles API requests for SWIFT codes
type SwiftHandler struct {
	service services.SwiftService
	logger  *slog.Logger
}

// NewSwiftHandler creates a new handler instance
func NewSwiftHandler(service services.SwiftService, logger *slog.Logger) *SwiftHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SwiftHandler{service: service, logger: logger}
}

// GetByCode returns a record, with its branches when it is a headquarters.
// The code is matched exactly as given.
func (h *SwiftHandler) GetByCode(c fiber.Ctx) error {
	code := c.Params("swiftCode")

	details, err := h.service.GetSwiftCode(c.Context(), code)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toSwiftCodeResponse(details))
}

// GetByCountry handles requests for all SWIFT codes by country
func (h *SwiftHandler) GetByCountry(c fiber.Ctx) error {
	countryCode := strings.ToUpper(c.Params("countryISO2code"))

	codes, err := h.service.GetSwiftCodesByCountry(c.Context(), countryCode)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toCountryResponse(codes))
}

// Create handles creation of a new SWIFT code
func (h *SwiftHandler) Create(c fiber.Ctx) error {
	var request CreateSwiftCodeRequest
	if err := c.Bind().Body(&request); err != nil {
		h.logger.Debug("Rejected request body", "error", err)
		return writeError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	message, err := h.service.CreateSwiftCode(c.Context(), request.toInput())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Message: message})
}

// Delete soft deletes the active record with the given code.
func (h *SwiftHandler) Delete(c fiber.Ctx) error {
	code := c.Params("swiftCode")

	message, err := h.service.DeleteSwiftCode(c.Context(), code)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: message})
}

// Health reports that the process is serving requests.
func Health(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (h *SwiftHandler) handleError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		return writeError(c, fiber.StatusConflict, err.Error())
	default:
		h.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return writeError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// writeError sends the shared error body for status.
func writeError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Status:  status,
		Error:   fiber.NewError(status).Message,
		Message: message,
	})
}

// ErrorHandler renders errors that escape the handlers, such as unknown
// routes or recovered panics, in the shared error body.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return writeError(c, fiberErr.Code, fiberErr.Message)
	}
	return writeError(c, fiber.StatusInternalServerError, "Internal server error")
}
