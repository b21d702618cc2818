package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
	"github.com/mkravets/accounts/internal/domain/accounts/model"
	"github.com/mkravets/accounts/internal/domain/accounts/repo"
	"github.com/mkravets/accounts/internal/user/dto"
)

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileDTO) (model.Profile, error)
}

type profileService struct {
	profiles repo.ProfileRepo
	v        *validator.Validate
}

func New(profiles repo.ProfileRepo, v *validator.Validate) Service {
	return &profileService{profiles: profiles, v: v}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileDTO) (model.Profile, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Profile{}, domainErrors.NewInvalidArgument(err.Error())
	}

	return s.profiles.UpsertProfile(ctx, model.Profile{
		UserID:    userID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		AvatarURL: in.AvatarURL,
		Bio:       in.Bio,
	})
}
