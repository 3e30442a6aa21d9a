package dto

import (
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
)

// SubmissionResponse is the validation result handed to the presentation
// layer. On rejection, Errors lists every failing field; on a persistence
// failure, Submitted echoes the raw values so a retry loses nothing.
type SubmissionResponse struct {
	Accepted  bool                      `json:"accepted"`
	Spot      *models.Spot              `json:"spot,omitempty"`
	Errors    map[string][]string       `json:"errors,omitempty"`
	Submitted *validation.RawSubmission `json:"submitted,omitempty"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating,omitempty"`
}

type ContestSubmitRequest struct {
	SpotID  string `json:"spot_id"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
}
