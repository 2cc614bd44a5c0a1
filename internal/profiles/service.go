package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/goals"
	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidSex     = errors.New("sex must be 'male' or 'female'")
	ErrInvalidMeasure = errors.New("weight, height and age must be positive")
)

// Service manages profiles. Goal targets are recomputed whenever a body
// attribute, activity level or goal intent changes.
type Service struct {
	storage storage.Storage
}

func NewService(st storage.Storage) *Service {
	return &Service{storage: st}
}

func (s *Service) ListProfiles(ctx context.Context) ([]ProfileDTO, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	profiles, err := s.storage.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	dtos := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		if p.OwnerUserID != ownerUserID {
			continue
		}
		dtos = append(dtos, toDTO(&p))
	}

	return dtos, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.ownedProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(profile)

	return &dto, nil
}

func (s *Service) CreateProfile(ctx context.Context, req CreateProfileRequest) (*ProfileDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := validateAttributes(req.WeightKg, req.HeightCm, req.Age, req.Sex); err != nil {
		return nil, err
	}

	profile := &storage.Profile{
		OwnerUserID:   userctx.GetUserIDOrDefault(ctx),
		Name:          name,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		Age:           req.Age,
		Sex:           req.Sex,
		ActivityLevel: req.ActivityLevel,
		GoalIntent:    req.GoalIntent,
	}

	goals.Apply(profile)

	if err := s.storage.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	dto := toDTO(profile)

	return &dto, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	profile, err := s.ownedProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	recompute := false

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		profile.Name = name
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
		recompute = true
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
		recompute = true
	}
	if req.Age != nil {
		profile.Age = *req.Age
		recompute = true
	}
	if req.Sex != nil {
		profile.Sex = *req.Sex
		recompute = true
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
		recompute = true
	}
	if req.GoalIntent != nil {
		profile.GoalIntent = *req.GoalIntent
		recompute = true
	}

	if recompute {
		if err := validateAttributes(profile.WeightKg, profile.HeightCm, profile.Age, profile.Sex); err != nil {
			return nil, err
		}
		goals.Apply(profile)
	}

	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	dto := toDTO(profile)

	return &dto, nil
}

func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ownedProfile(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	return nil
}

func (s *Service) ownedProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if profile.OwnerUserID != userctx.GetUserIDOrDefault(ctx) {
		return nil, ErrNotFound
	}

	return profile, nil
}

func validateAttributes(weightKg, heightCm float64, age int, sex string) error {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return ErrInvalidMeasure
	}
	if sex != "male" && sex != "female" {
		return ErrInvalidSex
	}

	return nil
}

func toDTO(p *storage.Profile) ProfileDTO {
	return ProfileDTO{
		ID:            p.ID.String(),
		Name:          p.Name,
		WeightKg:      p.WeightKg,
		HeightCm:      p.HeightCm,
		Age:           p.Age,
		Sex:           p.Sex,
		ActivityLevel: p.ActivityLevel,
		GoalIntent:    p.GoalIntent,
		CalorieGoal:   p.CalorieGoal,
		ProteinGoalG:  p.ProteinGoalG,
		CarbsGoalG:    p.CarbsGoalG,
		FatsGoalG:     p.FatsGoalG,
		WaterGoalMl:   p.WaterGoalMl,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
