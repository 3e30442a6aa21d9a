package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/dto"
	"github.com/shutterspot/shutterspot-backend/internal/identity"
	"github.com/shutterspot/shutterspot-backend/internal/services"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// FileReport lets any signed-in user flag content for review.
func (h *ModerationHandler) FileReport(c *fiber.Ctx) error {
	reporterID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.FileReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	contentID, err := validation.ValidateID(req.ContentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid content ID",
		})
	}

	report, err := h.moderation.FileReport(c.Context(), reporterID, req.ContentKind, contentID, req.Reason)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// Reported lists the pending reports of one kind for the admin panel.
func (h *ModerationHandler) Reported(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	kind := c.Params("kind")

	reports, err := h.moderation.Reported(c.Context(), actor, kind)
	if err != nil {
		return h.moderationError(c, err)
	}
	return c.JSON(fiber.Map{"kind": kind, "reports": reports})
}

// Clear dismisses the flags on a piece of content; the content survives.
func (h *ModerationHandler) Clear(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	kind := c.Params("kind")

	contentID, err := h.contentID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if err := h.moderation.Clear(c.Context(), actor, kind, contentID); err != nil {
		return h.moderationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reports cleared"})
}

// Delete removes the reported content and its reports together.
func (h *ModerationHandler) Delete(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	kind := c.Params("kind")

	contentID, err := h.contentID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if err := h.moderation.Delete(c.Context(), actor, kind, contentID); err != nil {
		return h.moderationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reported content deleted"})
}

func (h *ModerationHandler) contentID(c *fiber.Ctx) (uuid.UUID, error) {
	return validation.ValidateID(c.Params("id"))
}

func (h *ModerationHandler) moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAdminRequired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Access denied. Admins only!",
		})
	case errors.Is(err, services.ErrUnknownReportKind):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Moderation action failed",
	})
}
