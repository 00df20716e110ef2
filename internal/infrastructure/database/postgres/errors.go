package postgres

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueConstraint is the classified identity of a violated uniqueness
// rule. It is derived from the constraint name declared in db/schema.sql,
// never from the error message text.
type UniqueConstraint string

const (
	ConstraintEmail       UniqueConstraint = "email"
	ConstraintPhone       UniqueConstraint = "phone"
	ConstraintAddressHash UniqueConstraint = "address_hash"
	ConstraintUnknown     UniqueConstraint = "unknown"
)

// Constraint names as declared in db/schema.sql.
const (
	emailConstraintName       = "uq_customers_email"
	phoneConstraintName       = "uq_customers_phone"
	addressHashConstraintName = "uk_address_hash"
)

func classifyUniqueConstraint(constraintName string) UniqueConstraint {
	switch constraintName {
	case emailConstraintName:
		return ConstraintEmail
	case phoneConstraintName:
		return ConstraintPhone
	case addressHashConstraintName:
		return ConstraintAddressHash
	}
	return ConstraintUnknown
}

const (
	uniqueViolationCode      = "23505"
	integrityViolationPrefix = "23"
)

// translateDBError maps driver failures onto domain sentinels. Unique
// violations are resolved per constraint so callers can distinguish a
// duplicate email from a duplicate phone from a duplicate address.
func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolationCode {
			identity := classifyUniqueConstraint(pgErr.ConstraintName)
			contextLogger.Warn("Database unique constraint violation",
				"constraint", pgErr.ConstraintName, "identity", string(identity))
			switch identity {
			case ConstraintEmail:
				return customer.ErrDuplicateEmail
			case ConstraintPhone:
				return customer.ErrDuplicatePhone
			case ConstraintAddressHash:
				return address.ErrDuplicateAddress
			}
			return fmt.Errorf("%w: unique constraint %q", apperrors.ErrDataIntegrity, pgErr.ConstraintName)
		}
		if strings.HasPrefix(pgErr.Code, integrityViolationPrefix) {
			contextLogger.Warn("Database integrity constraint violation",
				"code", pgErr.Code, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: db error code %s", apperrors.ErrDataIntegrity, pgErr.Code)
		}
		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
