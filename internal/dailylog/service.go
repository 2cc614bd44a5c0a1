package dailylog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

var (
	ErrInvalidDate   = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidRange  = errors.New("from_date must not be after to_date")
	ErrInvalidWeight = errors.New("weight must be positive")
	ErrRangeTooWide  = errors.New("range cannot exceed 366 days")
)

const (
	dateLayout   = "2006-01-02"
	maxRangeDays = 366
)

// Service manages per-day wellness logs. Water is accumulated by deltas and
// clamped at zero, sleep is an absolute overwrite clamped at zero, weight is
// last write wins.
type Service struct {
	logs     storage.DailyLogStorage
	profiles storage.Storage
}

func NewService(logs storage.DailyLogStorage, profiles storage.Storage) *Service {
	return &Service{logs: logs, profiles: profiles}
}

// AddWater applies a delta to the day's water total. Negative totals clamp
// to zero, so an undo on an empty day stays at zero.
func (s *Service) AddWater(ctx context.Context, req WaterRequest) (*DailyLogDTO, error) {
	return s.mutateLog(ctx, req.ProfileID, req.Date, func(log *storage.DailyLog) error {
		log.WaterMl += req.DeltaMl
		if log.WaterMl < 0 {
			log.WaterMl = 0
		}

		return nil
	})
}

func (s *Service) SetSleep(ctx context.Context, req SleepRequest) (*DailyLogDTO, error) {
	return s.mutateLog(ctx, req.ProfileID, req.Date, func(log *storage.DailyLog) error {
		hours := req.Hours
		if hours < 0 {
			hours = 0
		}
		log.SleepHours = hours

		return nil
	})
}

func (s *Service) SetWeight(ctx context.Context, req WeightRequest) (*DailyLogDTO, error) {
	if req.WeightKg <= 0 {
		return nil, ErrInvalidWeight
	}

	return s.mutateLog(ctx, req.ProfileID, req.Date, func(log *storage.DailyLog) error {
		weight := req.WeightKg
		log.WeightKg = &weight

		return nil
	})
}

func (s *Service) SetExercise(ctx context.Context, req ExerciseRequest) (*DailyLogDTO, error) {
	return s.mutateLog(ctx, req.ProfileID, req.Date, func(log *storage.DailyLog) error {
		kcal := req.Kcal
		if kcal < 0 {
			kcal = 0
		}
		log.ExerciseKcal = &kcal

		return nil
	})
}

func (s *Service) AttachPhoto(ctx context.Context, profileID uuid.UUID, date string, photoID uuid.UUID) error {
	_, err := s.mutateLog(ctx, profileID.String(), date, func(log *storage.DailyLog) error {
		id := photoID
		log.PhotoID = &id

		return nil
	})

	return err
}

func (s *Service) mutateLog(ctx context.Context, profileID, date string, mutate func(*storage.DailyLog) error) (*DailyLogDTO, error) {
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: profile_id must be a UUID")
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	log, found, err := s.logs.GetLog(ctx, ownerUserID, pid, date)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	if !found {
		log = storage.DailyLog{
			OwnerUserID: ownerUserID,
			ProfileID:   pid,
			Date:        date,
		}
	}

	if err := mutate(&log); err != nil {
		return nil, err
	}

	if err := s.logs.UpsertLog(ctx, &log); err != nil {
		return nil, fmt.Errorf("upsert log: %w", err)
	}

	dto := toDTO(&log)

	return &dto, nil
}

func (s *Service) Day(ctx context.Context, profileID uuid.UUID, date string) (*DailyLogDTO, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	log, found, err := s.logs.GetLog(ctx, userctx.GetUserIDOrDefault(ctx), profileID, date)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	if !found {
		log = storage.DailyLog{ProfileID: profileID, Date: date}
	}

	dto := toDTO(&log)

	return &dto, nil
}

// Range returns one entry per calendar day. Days without a log row are
// zero-filled for water and sleep. Weight is forward-filled from the most
// recent recorded value, reaching back before the range start when needed;
// when no weight was ever logged, fallbackWeight seeds the series (defaults
// to the profile's weight).
func (s *Service) Range(ctx context.Context, profileID uuid.UUID, fromDate, toDate string, fallbackWeight *float64) ([]DayEntryDTO, error) {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return nil, ErrRangeTooWide
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	logs, err := s.logs.ListLogsRange(ctx, ownerUserID, profileID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	byDate := make(map[string]storage.DailyLog, len(logs))
	for _, log := range logs {
		byDate[log.Date] = log
	}

	lastWeight, err := s.logs.LatestWeightBefore(ctx, ownerUserID, profileID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("latest weight: %w", err)
	}

	if lastWeight == nil {
		if fallbackWeight == nil {
			// Best effort: an unknown profile just means no fallback.
			if prof, err := s.profiles.GetProfile(ctx, profileID); err == nil && prof != nil && prof.WeightKg > 0 {
				fallbackWeight = &prof.WeightKg
			}
		}
		if fallbackWeight != nil {
			w := *fallbackWeight
			lastWeight = &w
		}
	}

	days := []DayEntryDTO{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		entry := DayEntryDTO{Date: date}

		if log, ok := byDate[date]; ok {
			entry.WaterMl = log.WaterMl
			entry.SleepHours = log.SleepHours
			entry.WeightKg = log.WeightKg
			entry.ExerciseKcal = log.ExerciseKcal
		}

		if entry.WeightKg != nil {
			w := *entry.WeightKg
			lastWeight = &w
		} else if lastWeight != nil {
			w := *lastWeight
			entry.FallbackWeight = &w
		}

		days = append(days, entry)
	}

	return days, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDate
	}

	return nil
}

func toDTO(log *storage.DailyLog) DailyLogDTO {
	var photoID *string
	if log.PhotoID != nil {
		id := log.PhotoID.String()
		photoID = &id
	}

	return DailyLogDTO{
		ID:           log.ID.String(),
		ProfileID:    log.ProfileID.String(),
		Date:         log.Date,
		WaterMl:      log.WaterMl,
		SleepHours:   log.SleepHours,
		WeightKg:     log.WeightKg,
		PhotoID:      photoID,
		ExerciseKcal: log.ExerciseKcal,
		CreatedAt:    log.CreatedAt,
		UpdatedAt:    log.UpdatedAt,
	}
}
