package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/blob"
	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

// Errors
var (
	ErrInvalidDate      = fmt.Errorf("invalid date format")
	ErrInvalidDateRange = fmt.Errorf("from date must be before to date")
	ErrRangeTooLarge    = fmt.Errorf("date range too large")
	ErrProfileNotFound  = fmt.Errorf("profile not found")
	ErrReportNotFound   = fmt.Errorf("report not found")
)

// Service handles reports business logic
type Service struct {
	reportsStorage storage.ReportsStorage
	profileStorage storage.Storage
	generator      *Generator
	blobStore      blob.Store
	maxRangeDays   int
	presignTTL     int
	localMode      bool // true if no S3 configured
}

// NewService creates a new reports service
func NewService(
	reportsStorage storage.ReportsStorage,
	profileStorage storage.Storage,
	generator *Generator,
	blobStore blob.Store,
	maxRangeDays int,
	presignTTL int,
) *Service {
	return &Service{
		reportsStorage: reportsStorage,
		profileStorage: profileStorage,
		generator:      generator,
		blobStore:      blobStore,
		maxRangeDays:   maxRangeDays,
		presignTTL:     presignTTL,
		localMode:      blobStore == nil,
	}
}

// CreateReport generates a PDF report for the requested range. Generation
// failures are recorded as failed report metadata rather than dropped.
func (s *Service) CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error) {
	fromDate, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, ErrInvalidDate
	}

	toDate, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}

	daysDiff := int(toDate.Sub(fromDate).Hours() / 24)
	if daysDiff > s.maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	profile, err := s.getOwnedProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	report := &storage.ReportMeta{
		OwnerUserID: userctx.GetUserIDOrDefault(ctx),
		ProfileID:   req.ProfileID,
		FromDate:    req.From,
		ToDate:      req.To,
		Status:      StatusReady,
	}

	data, err := s.generator.GeneratePDF(ctx, profile, req.From, req.To)
	if err != nil {
		msg := err.Error()
		report.Status = StatusFailed
		report.Error = &msg
		if err := s.reportsStorage.CreateReport(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save report metadata: %w", err)
		}
		return s.toReport(report), nil
	}

	report.SizeBytes = int64(len(data))

	if s.localMode {
		report.Data = data
	} else {
		objectKey := fmt.Sprintf("reports/%s/%s_%s_%s.pdf",
			req.ProfileID.String(),
			req.From,
			req.To,
			uuid.New().String(),
		)

		if _, err := s.blobStore.PutObject(ctx, objectKey, data, "application/pdf"); err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}

		report.ObjectKey = &objectKey
	}

	if err := s.reportsStorage.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}

	return s.toReport(report), nil
}

// GetReport retrieves a report by ID
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	meta, err := s.reportsStorage.GetReport(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrReportNotFound
	}

	return s.toReport(meta), nil
}

// ListReports lists reports for a profile, newest first
func (s *Service) ListReports(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]Report, int, error) {
	if _, err := s.getOwnedProfile(ctx, profileID); err != nil {
		return nil, 0, ErrProfileNotFound
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)
	metaList, total, err := s.reportsStorage.ListReports(ctx, ownerUserID, profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]Report, len(metaList))
	for i := range metaList {
		reports[i] = *s.toReport(&metaList[i])
	}

	return reports, total, nil
}

// DeleteReport deletes a report and its stored PDF
func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	meta, err := s.reportsStorage.GetReport(ctx, ownerUserID, id)
	if err != nil {
		return err
	}
	if meta == nil {
		return ErrReportNotFound
	}

	if !s.localMode && meta.ObjectKey != nil {
		// Metadata deletion matters more than the orphaned object.
		_ = s.blobStore.DeleteObject(ctx, *meta.ObjectKey)
	}

	if err := s.reportsStorage.DeleteReport(ctx, ownerUserID, id); err != nil {
		return fmt.Errorf("failed to delete report metadata: %w", err)
	}

	return nil
}

// GetReportDownloadURL generates a download URL for a report
func (s *Service) GetReportDownloadURL(ctx context.Context, id uuid.UUID, baseURL string) (string, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	meta, err := s.reportsStorage.GetReport(ctx, ownerUserID, id)
	if err != nil {
		return "", err
	}
	if meta == nil {
		return "", ErrReportNotFound
	}

	if s.localMode || meta.ObjectKey == nil {
		return fmt.Sprintf("%s/v1/reports/%s/download", strings.TrimSuffix(baseURL, "/"), id.String()), nil
	}

	presignedURL, err := s.blobStore.PresignGet(ctx, *meta.ObjectKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignedURL, nil
}

// GetReportData retrieves the raw PDF bytes for direct serving
func (s *Service) GetReportData(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	meta, err := s.reportsStorage.GetReport(ctx, ownerUserID, id)
	if err != nil {
		return nil, "", err
	}
	if meta == nil {
		return nil, "", ErrReportNotFound
	}

	if meta.ObjectKey != nil && !s.localMode {
		data, err := s.blobStore.GetObject(ctx, *meta.ObjectKey)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get object from S3: %w", err)
		}
		return data, "application/pdf", nil
	}

	return meta.Data, "application/pdf", nil
}

// toReport converts ReportMeta to the Report model
func (s *Service) toReport(meta *storage.ReportMeta) *Report {
	return &Report{
		ID:        meta.ID,
		ProfileID: meta.ProfileID,
		FromDate:  meta.FromDate,
		ToDate:    meta.ToDate,
		ObjectKey: meta.ObjectKey,
		SizeBytes: meta.SizeBytes,
		Status:    meta.Status,
		Error:     meta.Error,
		CreatedAt: meta.CreatedAt,
		Data:      meta.Data,
	}
}

func (s *Service) getOwnedProfile(ctx context.Context, profileID uuid.UUID) (*storage.Profile, error) {
	profile, err := s.profileStorage.GetProfile(ctx, profileID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" && profile.OwnerUserID != userID {
		return nil, ErrProfileNotFound
	}

	return profile, nil
}
