package service

import (
	"context"
	"errors"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mkravets/accounts/internal/auth/dto"
	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
	"github.com/mkravets/accounts/internal/domain/accounts/model"
	"github.com/mkravets/accounts/internal/domain/accounts/repo"
	"github.com/mkravets/accounts/internal/token"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type authService struct {
	userRepo repo.UserRepo
	sessions repo.SessionStore
	codec    *token.Codec
	issuer   *token.Issuer
	pepper   string
	v        *validator.Validate
}

func New(
	ur repo.UserRepo,
	ss repo.SessionStore,
	codec *token.Codec,
	issuer *token.Issuer,
	pepper string,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, sessions: ss, codec: codec, issuer: issuer, pepper: pepper, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, model.TokenPair{}, domainErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := argon2id.CreateHash(in.Password+a.pepper, argonParams)
	if err != nil {
		return model.User{}, model.TokenPair{}, domainErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: passwordHash,
		Name:         in.Name,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return model.User{}, model.TokenPair{}, domainErrors.ErrAlreadyExists
		}
		return model.User{}, model.TokenPair{}, domainErrors.WrapInternal(err, "Register")
	}

	pair, err := a.issueSession(ctx, user.ID)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}
	return user, pair, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.User, model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, model.TokenPair{}, domainErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return model.User{}, model.TokenPair{}, domainErrors.ErrInvalidCredentials
	case err != nil:
		return model.User{}, model.TokenPair{}, domainErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password+a.pepper, user.PasswordHash)
	if err != nil {
		return model.User{}, model.TokenPair{}, domainErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.User{}, model.TokenPair{}, domainErrors.ErrInvalidCredentials
	}

	pair, err := a.issueSession(ctx, user.ID)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh credential for a fresh pair. The token
// must both verify cryptographically and still be the subject's current
// session record; a token superseded by a newer login or cleared by logout is
// rejected even though its signature is fine.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, domainErrors.NewInvalidArgument(err.Error())
	}

	uid, err := a.codec.Subject(in.RefreshToken, token.ClassRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	current, err := a.sessions.Matches(ctx, uid, in.RefreshToken)
	if err != nil {
		return model.TokenPair{}, domainErrors.WrapInternal(err, "Refresh")
	}
	if !current {
		return model.TokenPair{}, domainErrors.ErrTokenExpired
	}

	return a.issueSession(ctx, uid)
}

func (a *authService) Logout(ctx context.Context, in dto.LogoutDTO) error {
	if in.RefreshToken == "" {
		// nothing to invalidate; matches the historical best-effort logout
		return nil
	}

	uid, err := a.codec.Subject(in.RefreshToken, token.ClassRefresh)
	if err != nil {
		// an unverifiable token carries no session worth invalidating
		return nil
	}

	if err := a.sessions.Invalidate(ctx, uid); err != nil {
		return domainErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) issueSession(ctx context.Context, uid uuid.UUID) (model.TokenPair, error) {
	pair, err := a.issuer.IssuePair(uid)
	if err != nil {
		return model.TokenPair{}, err
	}
	if err := a.sessions.Record(ctx, uid, pair.RefreshToken, pair.RefreshExpires); err != nil {
		return model.TokenPair{}, domainErrors.WrapInternal(err, "RecordSession")
	}
	return pair, nil
}
