package usecase

import (
	"context"
	"fmt"
	"time"

	"movietix/internal/data/repository"
	"movietix/internal/dto/request"
	"movietix/internal/dto/response"
	"movietix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.ProfileResponse, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log.With(zap.String("service", "profile")),
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*response.ProfileResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	profile, err := s.repo.Profile.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", userID)
	}

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.ProfileResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	profile, err := s.repo.Profile.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", userID)
	}

	profile.Username = req.Username
	profile.FullName = req.FullName
	profile.AvatarURL = req.AvatarURL
	profile.UpdatedAt = time.Now()

	if err := s.repo.Profile.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info("Profile updated",
		zap.String("user_id", userID),
		zap.String("username", profile.Username),
	)

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}
