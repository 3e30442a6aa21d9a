package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/dto"
	"github.com/shutterspot/shutterspot-backend/internal/identity"
	"github.com/shutterspot/shutterspot-backend/internal/services"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
)

const dateLayout = "2006-01-02"

type SpotHandler struct {
	spots    *services.SpotService
	comments *services.CommentService
}

func NewSpotHandler(spots *services.SpotService, comments *services.CommentService) *SpotHandler {
	return &SpotHandler{spots: spots, comments: comments}
}

func (h *SpotHandler) Create(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	if actor.ID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var raw validation.RawSubmission
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	outcome, err := h.spots.Create(c.Context(), actor, raw)
	if err != nil {
		// The submitted values ride along so the client can re-render the
		// form without data loss.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SubmissionResponse{
			Accepted: false,
			Errors: map[string][]string{
				"server_errors":        {"Spot submission failed! Please try again."},
				validation.FieldImages: {"Please re-upload your images."},
			},
			Submitted: &raw,
		})
	}
	if !outcome.Accepted {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmissionResponse{
			Accepted: false, Errors: outcome.Errors, Submitted: &raw,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmissionResponse{
		Accepted: true, Spot: outcome.Spot,
	})
}

func (h *SpotHandler) Update(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	spotID, err := validation.ValidateID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid spot ID",
		})
	}

	var raw validation.RawSubmission
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	outcome, err := h.spots.Update(c.Context(), actor, spotID, raw)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSpotNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Spot not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "You tried to modify a spot that doesn't belong to you!",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SubmissionResponse{
			Accepted: false,
			Errors: map[string][]string{
				"server_errors":        {"Spot submission failed! Please try again."},
				validation.FieldImages: {"Please re-upload your images."},
			},
			Submitted: &raw,
		})
	}
	if !outcome.Accepted {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmissionResponse{
			Accepted: false, Errors: outcome.Errors, Submitted: &raw,
		})
	}
	return c.JSON(dto.SubmissionResponse{Accepted: true, Spot: outcome.Spot})
}

func (h *SpotHandler) Get(c *fiber.Ctx) error {
	spotID, err := validation.ValidateID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid spot ID",
		})
	}

	spot, err := h.spots.Get(c.Context(), spotID)
	if err != nil {
		if errors.Is(err, services.ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Spot not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not fetch spot",
		})
	}
	return c.JSON(spot)
}

func (h *SpotHandler) List(c *fiber.Ctx) error {
	spots, err := h.spots.All(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not fetch spots",
		})
	}
	return c.JSON(fiber.Map{"spots": spots})
}

func (h *SpotHandler) Search(c *fiber.Ctx) error {
	keyword := c.Query("keyword", "")
	spots, err := h.spots.SearchByKeyword(c.Context(), keyword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not perform search",
		})
	}
	return c.JSON(fiber.Map{"spots": spots, "keyword": keyword})
}

func (h *SpotHandler) SearchByTags(c *fiber.Ctx) error {
	rawTags := c.Query("tags", "")
	spots, err := h.spots.SearchByTags(c.Context(), rawTags)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTagFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "tags filter is empty",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not perform search",
		})
	}
	return c.JSON(fiber.Map{"spots": spots, "tags": rawTags})
}

func (h *SpotHandler) SearchByRating(c *fiber.Ctx) error {
	minRating, err := strconv.ParseFloat(c.Query("minRating", ""), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "invalid min rating value provided",
		})
	}

	spots, err := h.spots.SearchByRating(c.Context(), minRating)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not perform search",
		})
	}
	return c.JSON(fiber.Map{"spots": spots, "min_rating": minRating})
}

func (h *SpotHandler) SearchByDateRange(c *fiber.Ctx) error {
	start, startErr := time.Parse(dateLayout, c.Query("start_date", ""))
	end, endErr := time.Parse(dateLayout, c.Query("end_date", ""))
	if startErr != nil || endErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid date format. Use YYYY-MM-DD.",
		})
	}

	spots, err := h.spots.SearchByDateRange(c.Context(), start, end)
	if err != nil {
		if errors.Is(err, services.ErrBadDateRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Start date must be earlier than end date.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not fetch spots by date range",
		})
	}
	return c.JSON(fiber.Map{"spots": spots})
}

func (h *SpotHandler) AddComment(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	spotID, err := validation.ValidateID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid spot ID",
		})
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	comment, err := h.comments.Add(c.Context(), actor, spotID, req.Content, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSpotNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Spot not found",
			})
		case errors.Is(err, services.ErrEmptyComment), errors.Is(err, services.ErrBadRating):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add comment",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *SpotHandler) Comments(c *fiber.Ctx) error {
	spotID, err := validation.ValidateID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid spot ID",
		})
	}

	comments, err := h.comments.BySpot(c.Context(), spotID)
	if err != nil {
		if errors.Is(err, services.ErrSpotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Spot not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not fetch comments",
		})
	}
	return c.JSON(fiber.Map{"comments": comments})
}
