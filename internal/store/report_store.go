package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"gorm.io/gorm"
)

// ReportStore is the GORM-backed implementation of services.ReportStore.
type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

// File records a flag, one per reporter per piece of content. A repeat flag
// from the same reporter is absorbed.
func (r *ReportStore) File(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).
		Where("content_kind = ? AND content_id = ? AND reporter_id = ?",
			report.ContentKind, report.ContentID, report.ReporterID).
		FirstOrCreate(report).Error
}

func (r *ReportStore) Reported(ctx context.Context, kind string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("content_kind = ? AND status = ?", kind, models.ReportStatusPending).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reported %s content: %w", kind, err)
	}
	return reports, nil
}

func (r *ReportStore) Clear(ctx context.Context, kind string, contentID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("content_kind = ? AND content_id = ? AND status = ?",
			kind, contentID, models.ReportStatusPending).
		Update("status", models.ReportStatusCleared)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteContent removes the flagged content and every report attached to it
// in one transaction. Content that is already gone is not an error; the
// reports are swept regardless. Deleting a spot also takes its comments,
// contest submissions, and their reports.
func (r *ReportStore) DeleteContent(ctx context.Context, kind string, contentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case models.ReportKindSpot:
			if err := r.deleteSpotTree(tx, contentID); err != nil {
				return err
			}
		case models.ReportKindComment:
			if err := tx.Delete(&models.Comment{}, "id = ?", contentID).Error; err != nil {
				return err
			}
		case models.ReportKindContestSubmission:
			if err := tx.Delete(&models.ContestSubmission{}, "id = ?", contentID).Error; err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown report kind %q", kind)
		}
		return tx.Where("content_kind = ? AND content_id = ?", kind, contentID).
			Delete(&models.Report{}).Error
	})
}

func (r *ReportStore) deleteSpotTree(tx *gorm.DB, spotID uuid.UUID) error {
	var commentIDs []uuid.UUID
	if err := tx.Model(&models.Comment{}).Where("spot_id = ?", spotID).
		Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("content_kind = ? AND content_id IN ?",
			models.ReportKindComment, commentIDs).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Comment{}, "id IN ?", commentIDs).Error; err != nil {
			return err
		}
	}

	var submissionIDs []uuid.UUID
	if err := tx.Model(&models.ContestSubmission{}).Where("spot_id = ?", spotID).
		Pluck("id", &submissionIDs).Error; err != nil {
		return err
	}
	if len(submissionIDs) > 0 {
		if err := tx.Where("content_kind = ? AND content_id IN ?",
			models.ReportKindContestSubmission, submissionIDs).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ContestSubmission{}, "id IN ?", submissionIDs).Error; err != nil {
			return err
		}
	}

	return tx.Delete(&models.Spot{}, "id = ?", spotID).Error
}
