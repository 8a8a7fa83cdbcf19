package pg

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		expected   bool
	}{
		{
			name:       "Any unique constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			constraint: "",
			expected:   true,
		},
		{
			name:       "Matching constraint",
			err:        fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}),
			constraint: "users_email_key",
			expected:   true,
		},
		{
			name:       "Other constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "users_referral_code_key"},
			constraint: "users_email_key",
			expected:   false,
		},
		{
			name:       "Foreign key violation",
			err:        &pgconn.PgError{Code: "23503"},
			constraint: "",
			expected:   false,
		},
		{
			name:       "Plain error",
			err:        errors.New("database error"),
			constraint: "",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}

func TestWithTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	_, ok := txFromContext(context.Background())
	assert.False(t, ok)

	got, ok := txFromContext(WithTx(context.Background(), tx))
	assert.True(t, ok)
	assert.Equal(t, tx, got)
}
