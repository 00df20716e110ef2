package postgres

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

func TestClassifyUniqueConstraint(t *testing.T) {
	tests := []struct {
		constraint string
		expected   UniqueConstraint
	}{
		{"uq_customers_email", ConstraintEmail},
		{"uq_customers_phone", ConstraintPhone},
		{"uk_address_hash", ConstraintAddressHash},
		{"some_other_constraint", ConstraintUnknown},
		{"", ConstraintUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyUniqueConstraint(tt.constraint))
		})
	}
}

func TestTranslateDBError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateDBError(nil, logger))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		err := translateDBError(pgx.ErrNoRows, logger)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("email constraint maps to duplicate email", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_customers_email"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	})

	t.Run("phone constraint maps to duplicate phone", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_customers_phone"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, customer.ErrDuplicatePhone)
	})

	t.Run("address hash constraint maps to duplicate address", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uk_address_hash"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, address.ErrDuplicateAddress)
	})

	t.Run("unknown unique constraint maps to data integrity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_something_new"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
		assert.Contains(t, err.Error(), "uq_something_new")
	})

	t.Run("wrapped pg error is still classified", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_customers_email"}
		err := translateDBError(fmt.Errorf("exec failed: %w", pgErr), logger)
		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
	})

	t.Run("foreign key violation maps to data integrity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "addresses_customer_id_fkey"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
	})

	t.Run("not null violation maps to data integrity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23502"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
	})

	t.Run("other pg error maps to database error", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "57014"}
		err := translateDBError(pgErr, logger)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		assert.NotErrorIs(t, err, apperrors.ErrDataIntegrity)
	})

	t.Run("generic error maps to database error", func(t *testing.T) {
		err := translateDBError(errors.New("connection reset"), logger)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}
