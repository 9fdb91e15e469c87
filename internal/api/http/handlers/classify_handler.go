package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/errorutil"
)

// ClassifyHandler exposes the classifier directly for the try-it UI.
type ClassifyHandler struct {
	service *service.TriageService
}

// NewClassifyHandler constructs handler.
func NewClassifyHandler(triageService *service.TriageService) *ClassifyHandler {
	return &ClassifyHandler{service: triageService}
}

// Classify POST /api/classify.
func (h *ClassifyHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Classify(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": classificationResponse(result)})
}
