package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/accounts/internal/domain/accounts/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user model.User) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

type ProfileRepo interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpsertProfile(ctx context.Context, profile model.Profile) (model.Profile, error)
}

// SessionStore tracks the single active refresh credential per subject.
// A new Record overwrites the previous session (last login wins), so an
// earlier refresh token silently stops matching.
type SessionStore interface {
	Record(ctx context.Context, userID uuid.UUID, refreshToken string, exp time.Time) error
	Current(ctx context.Context, userID uuid.UUID) (string, error)
	Matches(ctx context.Context, userID uuid.UUID, refreshToken string) (bool, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
