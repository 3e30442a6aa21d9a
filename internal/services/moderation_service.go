package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/authz"
	"github.com/shutterspot/shutterspot-backend/internal/models"
)

var (
	ErrAdminRequired     = errors.New("admin access required")
	ErrUnknownReportKind = errors.New("unknown report kind")
	ErrEmptyReason       = errors.New("report reason is required")
)

// ReportStore is the report persistence contract. DeleteContent removes the
// flagged content together with its reports in one transaction and treats
// already-deleted content as success.
type ReportStore interface {
	File(ctx context.Context, report *models.Report) error
	Reported(ctx context.Context, kind string) ([]models.Report, error)
	// Clear marks pending reports for the content as cleared and returns how
	// many rows changed. Zero is not an error.
	Clear(ctx context.Context, kind string, contentID uuid.UUID) (int64, error)
	DeleteContent(ctx context.Context, kind string, contentID uuid.UUID) error
}

// ModerationService resolves reports uniformly across the three content
// kinds: clear dismisses the flags and keeps the content, delete removes the
// content and its flags together.
type ModerationService struct {
	store ReportStore
}

func NewModerationService(store ReportStore) *ModerationService {
	return &ModerationService{store: store}
}

// FileReport records a user flag against a piece of content.
func (s *ModerationService) FileReport(ctx context.Context, reporterID uuid.UUID, kind string, contentID uuid.UUID, reason string) (*models.Report, error) {
	if !models.ValidReportKind(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyReason
	}

	report := &models.Report{
		ContentKind: kind,
		ContentID:   contentID,
		ReporterID:  reporterID,
		Reason:      strings.TrimSpace(reason),
		Status:      models.ReportStatusPending,
	}
	if err := s.store.File(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to file report: %w", err)
	}
	return report, nil
}

// Reported lists the pending reports of one kind for the admin panel.
func (s *ModerationService) Reported(ctx context.Context, actor authz.Actor, kind string) ([]models.Report, error) {
	if err := s.requireAdmin(actor, kind, uuid.Nil, "list"); err != nil {
		return nil, err
	}
	if !models.ValidReportKind(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}
	return s.store.Reported(ctx, kind)
}

// Clear dismisses the flags on the content; the content survives. Clearing
// content with no pending reports is a no-op success.
func (s *ModerationService) Clear(ctx context.Context, actor authz.Actor, kind string, contentID uuid.UUID) error {
	if err := s.requireAdmin(actor, kind, contentID, "clear"); err != nil {
		return err
	}
	if !models.ValidReportKind(kind) {
		return fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}

	cleared, err := s.store.Clear(ctx, kind, contentID)
	if err != nil {
		return fmt.Errorf("failed to clear reports: %w", err)
	}
	slog.Info("reports cleared",
		"kind", kind, "content_id", contentID, "user_id", actor.ID.String(), "count", cleared)
	return nil
}

// Delete removes the reported content and its reports together. Deleting
// content that is already gone is treated as success.
func (s *ModerationService) Delete(ctx context.Context, actor authz.Actor, kind string, contentID uuid.UUID) error {
	if err := s.requireAdmin(actor, kind, contentID, "delete"); err != nil {
		return err
	}
	if !models.ValidReportKind(kind) {
		return fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}

	if err := s.store.DeleteContent(ctx, kind, contentID); err != nil {
		return fmt.Errorf("failed to delete reported content: %w", err)
	}
	slog.Info("reported content deleted",
		"kind", kind, "content_id", contentID, "user_id", actor.ID.String())
	return nil
}

func (s *ModerationService) requireAdmin(actor authz.Actor, kind string, contentID uuid.UUID, action string) error {
	d := authz.AdminOnly(actor)
	if d.Allowed {
		return nil
	}
	slog.Warn("unauthorized moderation attempt",
		"user_id", actor.ID.String(), "kind", kind, "content_id", contentID,
		"action", action, "reason", d.Reason)
	return fmt.Errorf("%w: %s", ErrAdminRequired, d.Reason)
}
