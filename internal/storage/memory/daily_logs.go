package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

type dailyLogStorage struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]storage.DailyLog
}

func newDailyLogStorage() *dailyLogStorage {
	return &dailyLogStorage{logs: make(map[uuid.UUID]storage.DailyLog)}
}

func (s *dailyLogStorage) GetLog(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (storage.DailyLog, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, log := range s.logs {
		if log.OwnerUserID == ownerUserID && log.ProfileID == profileID && log.Date == date {
			return log, true, nil
		}
	}

	return storage.DailyLog{}, false, nil
}

// UpsertLog stores the log keyed by (profile, date). The caller merges field
// updates into the existing row before calling.
func (s *dailyLogStorage) UpsertLog(ctx context.Context, log *storage.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.logs {
		if existing.OwnerUserID == log.OwnerUserID && existing.ProfileID == log.ProfileID && existing.Date == log.Date {
			log.ID = existing.ID
			log.CreatedAt = existing.CreatedAt
			log.UpdatedAt = time.Now()
			s.logs[id] = *log

			return nil
		}
	}

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()

	s.logs[log.ID] = *log

	return nil
}

func (s *dailyLogStorage) ListLogsRange(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate, toDate string) ([]storage.DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]storage.DailyLog, 0)
	for _, log := range s.logs {
		if log.OwnerUserID != ownerUserID || log.ProfileID != profileID {
			continue
		}
		if log.Date < fromDate || log.Date > toDate {
			continue
		}
		logs = append(logs, log)
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })

	return logs, nil
}

// LatestWeightBefore returns the most recent recorded weight strictly before
// the given date, or nil when no earlier log carries a weight.
func (s *dailyLogStorage) LatestWeightBefore(ctx context.Context, ownerUserID string, profileID uuid.UUID, beforeDate string) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		bestDate   string
		bestWeight *float64
	)
	for _, log := range s.logs {
		if log.OwnerUserID != ownerUserID || log.ProfileID != profileID {
			continue
		}
		if log.Date >= beforeDate || log.WeightKg == nil {
			continue
		}
		if bestWeight == nil || log.Date > bestDate {
			w := *log.WeightKg
			bestDate = log.Date
			bestWeight = &w
		}
	}

	return bestWeight, nil
}
