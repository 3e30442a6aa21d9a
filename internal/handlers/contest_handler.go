package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shutterspot/shutterspot-backend/internal/dto"
	"github.com/shutterspot/shutterspot-backend/internal/identity"
	"github.com/shutterspot/shutterspot-backend/internal/services"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
)

type ContestHandler struct {
	contest *services.ContestService
}

func NewContestHandler(contest *services.ContestService) *ContestHandler {
	return &ContestHandler{contest: contest}
}

func (h *ContestHandler) Submit(c *fiber.Ctx) error {
	actor := identity.GetActor(c)

	var req dto.ContestSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	spotID, err := validation.ValidateID(req.SpotID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid spot ID",
		})
	}

	outcome, err := h.contest.Submit(c.Context(), actor, spotID, req.Caption, req.Image)
	if err != nil {
		if errors.Is(err, services.ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Spot not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Contest submission failed! Please try again.",
		})
	}
	if !outcome.Accepted {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmissionResponse{
			Accepted: false, Errors: outcome.Errors,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmissionResponse{Accepted: true})
}

func (h *ContestHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	subs, err := h.contest.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not fetch contest submissions",
		})
	}
	return c.JSON(fiber.Map{"submissions": subs})
}
