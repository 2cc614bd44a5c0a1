package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

type reportsStorage struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]storage.ReportMeta
}

func newReportsStorage() *reportsStorage {
	return &reportsStorage{reports: make(map[uuid.UUID]storage.ReportMeta)}
}

func (s *reportsStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}

	report.CreatedAt = time.Now()

	s.reports[report.ID] = *report

	return nil
}

func (s *reportsStorage) GetReport(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok || report.OwnerUserID != ownerUserID {
		return nil, nil
	}

	return &report, nil
}

func (s *reportsStorage) ListReports(ctx context.Context, ownerUserID string, profileID uuid.UUID, limit, offset int) ([]storage.ReportMeta, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]storage.ReportMeta, 0)
	for _, report := range s.reports {
		if report.OwnerUserID == ownerUserID && report.ProfileID == profileID {
			reports = append(reports, report)
		}
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].CreatedAt.After(reports[j].CreatedAt) })

	total := len(reports)
	if offset >= total {
		return []storage.ReportMeta{}, total, nil
	}
	reports = reports[offset:]
	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}

	return reports, total, nil
}

func (s *reportsStorage) DeleteReport(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok || report.OwnerUserID != ownerUserID {
		return ErrNotFound
	}

	delete(s.reports, id)

	return nil
}
