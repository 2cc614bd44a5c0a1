package goals

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

// Service reads and recomputes the derived targets stored on profiles.
type Service struct {
	storage storage.Storage
}

// NewService creates a new goals service.
func NewService(st storage.Storage) *Service {
	return &Service{storage: st}
}

// Get returns the stored targets for a profile. Targets are whatever the
// last recompute produced; reads never recompute.
func (s *Service) Get(ctx context.Context, profileID uuid.UUID) (*TargetsDTO, error) {
	profile, err := s.ownedProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	dto := toDTO(profile)
	return &dto, nil
}

// Recalculate recomputes targets from the profile's current physical
// attributes and persists them.
func (s *Service) Recalculate(ctx context.Context, profileID uuid.UUID) (*TargetsDTO, error) {
	profile, err := s.ownedProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	Apply(profile)

	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	dto := toDTO(profile)
	return &dto, nil
}

// Apply computes targets from the profile's attributes and writes them onto
// the struct. Shared with the profiles service, which recomputes on every
// attribute change.
func Apply(profile *storage.Profile) {
	t := Compute(profile.WeightKg, profile.HeightCm, profile.Age, profile.Sex, profile.ActivityLevel, profile.GoalIntent)
	profile.CalorieGoal = t.CalorieGoal
	profile.ProteinGoalG = t.ProteinGoalG
	profile.CarbsGoalG = t.CarbsGoalG
	profile.FatsGoalG = t.FatsGoalG
	profile.WaterGoalMl = t.WaterGoalMl
}

func (s *Service) ownedProfile(ctx context.Context, profileID uuid.UUID) (*storage.Profile, error) {
	profile, err := s.storage.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("profile_not_found")
	}
	if profile.OwnerUserID != userctx.GetUserIDOrDefault(ctx) {
		return nil, fmt.Errorf("profile_not_found")
	}
	return profile, nil
}

func toDTO(p *storage.Profile) TargetsDTO {
	return TargetsDTO{
		ProfileID:    p.ID,
		CalorieGoal:  p.CalorieGoal,
		ProteinGoalG: p.ProteinGoalG,
		CarbsGoalG:   p.CarbsGoalG,
		FatsGoalG:    p.FatsGoalG,
		WaterGoalMl:  p.WaterGoalMl,
		UpdatedAt:    p.UpdatedAt,
	}
}
