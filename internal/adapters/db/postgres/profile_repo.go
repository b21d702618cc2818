package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
	"github.com/mkravets/accounts/internal/domain/accounts/model"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	var p model.Profile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Profile{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Profile{}, domainErrors.WrapInternal(err, "GetProfile")
	}
	return p, nil
}

// UpsertProfile inserts or fully replaces the subject's profile row.
func (r *ProfileRepo) UpsertProfile(ctx context.Context, profile model.Profile) (model.Profile, error) {
	profile.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&profile)
	if err := res.Error; err != nil {
		return model.Profile{}, domainErrors.WrapInternal(err, "UpsertProfile")
	}
	return profile, nil
}
