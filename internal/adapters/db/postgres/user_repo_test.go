package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
	}

	require.True(t, isUniqueViolation(dup))

	// gorm wraps driver errors before they reach the repo.
	require.True(t, isUniqueViolation(fmt.Errorf("create: %w", dup)))

	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("connection refused")))
	require.False(t, isUniqueViolation(nil))
}
