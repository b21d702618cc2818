package service

import (
	"context"

	"github.com/mkravets/accounts/internal/auth/dto"
	"github.com/mkravets/accounts/internal/domain/accounts/model"
)

type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (model.User, model.TokenPair, error)
	Login(ctx context.Context, in dto.LoginDTO) (model.User, model.TokenPair, error)
	Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error)
	Logout(ctx context.Context, in dto.LogoutDTO) error
}
