package models

import (
	"time"

	"github.com/google/uuid"
)

// Report kinds. One row per reporter per piece of content; moderation acts on
// all rows for a content ID at once.
const (
	ReportKindSpot              = "spot"
	ReportKindComment           = "comment"
	ReportKindContestSubmission = "contest_submission"
)

// Report statuses. Deleted content takes its reports with it, so there is no
// "deleted" status.
const (
	ReportStatusPending = "pending"
	ReportStatusCleared = "cleared"
)

// Report is a user flag raised against a spot, comment, or contest submission.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContentKind string    `gorm:"size:50;not null;index:idx_reports_kind_content" json:"content_kind"`
	ContentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_reports_kind_content" json:"content_id"`
	ReporterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason      string    `gorm:"size:500;not null" json:"reason"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Reporter    User      `gorm:"foreignKey:ReporterID" json:"-"`
}

// ValidReportKind reports whether kind names one of the three moderated
// content kinds.
func ValidReportKind(kind string) bool {
	switch kind {
	case ReportKindSpot, ReportKindComment, ReportKindContestSubmission:
		return true
	}
	return false
}
