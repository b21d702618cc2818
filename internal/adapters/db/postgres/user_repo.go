package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
	"github.com/mkravets/accounts/internal/domain/accounts/model"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := r.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, domainErrors.ErrAlreadyExists
		}
		return uuid.Nil, domainErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation as surfaced by the pgx/v5 driver gorm runs on.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "GetUserByEmail")
	}
	return u, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, domainErrors.WrapInternal(err, "GetUserByID")
	}
	return u, nil
}
