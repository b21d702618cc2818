package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
	"github.com/mkravets/accounts/internal/domain/accounts/model"
	"github.com/mkravets/accounts/internal/user/dto"
	usersvc "github.com/mkravets/accounts/internal/user/service"
)

type profileRepoStub struct{ rows map[uuid.UUID]model.Profile }

func (p *profileRepoStub) GetProfile(_ context.Context, uid uuid.UUID) (model.Profile, error) {
	row, ok := p.rows[uid]
	if !ok {
		return model.Profile{}, domainErrors.ErrNotFound
	}
	return row, nil
}

func (p *profileRepoStub) UpsertProfile(_ context.Context, profile model.Profile) (model.Profile, error) {
	profile.UpdatedAt = time.Now()
	p.rows[profile.UserID] = profile
	return profile, nil
}

func newService() (usersvc.Service, *profileRepoStub) {
	repo := &profileRepoStub{rows: map[uuid.UUID]model.Profile{}}
	return usersvc.New(repo, validator.New()), repo
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _ := newService()
	_, err := svc.GetProfile(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestUpdateProfile_Upsert(t *testing.T) {
	svc, _ := newService()
	uid := uuid.New()

	first, err := svc.UpdateProfile(context.Background(), uid, dto.UpdateProfileDTO{
		FirstName: "Ada",
		Bio:       "hello",
	})
	require.NoError(t, err)
	require.Equal(t, uid, first.UserID)

	// second write replaces the row, it never creates a duplicate
	second, err := svc.UpdateProfile(context.Background(), uid, dto.UpdateProfileDTO{
		FirstName: "Ada",
		LastName:  "L",
	})
	require.NoError(t, err)
	require.Equal(t, "L", second.LastName)
	require.Empty(t, second.Bio)

	got, err := svc.GetProfile(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, second.LastName, got.LastName)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc, _ := newService()
	uid := uuid.New()

	cases := []dto.UpdateProfileDTO{
		{Phone: "not-a-phone"},
		{AvatarURL: "not a url"},
		{Bio: string(make([]byte, 501))},
	}
	for _, in := range cases {
		_, err := svc.UpdateProfile(context.Background(), uid, in)
		require.True(t, domainErrors.IsInvalidArgument(err), "dto %+v: got %v", in, err)
	}
}
