package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type AddressRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ address.AddressRepository = (*AddressRepository)(nil)

func NewAddressRepository(db DBPool, logger *slog.Logger) *AddressRepository {
	if db == nil {
		panic("DBPool cannot be nil for AddressRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressRepository, using default stderr handler")
	}
	return &AddressRepository{
		db:     db,
		logger: logger.With("component", "AddressRepository"),
	}
}

const addressSelectColumns = `id, street, COALESCE(street2, ''), city, state, pincode, country, customer_id, address_hash`

func scanAddress(row pgx.Row, addr *address.Address) error {
	return row.Scan(
		&addr.AddressID,
		&addr.Street,
		&addr.Street2,
		&addr.City,
		&addr.State,
		&addr.Pincode,
		&addr.Country,
		&addr.CustomerID,
		&addr.Fingerprint,
	)
}

func (r *AddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*address.Address, error) {
	r.logger.DebugContext(ctx, "Querying addresses by customer", slog.Int64("customerID", customerID))

	query := fmt.Sprintf(`
        SELECT %s
        FROM addresses
        WHERE customer_id = $1
        ORDER BY id ASC`, addressSelectColumns)

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query addresses", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	addresses := make([]*address.Address, 0)
	for rows.Next() {
		var addr address.Address
		if err := scanAddress(rows, &addr); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan address row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan address row: %w", apperrors.ErrDatabase, err)
		}
		addresses = append(addresses, &addr)
	}
	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating address rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating address rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished querying addresses", slog.Int("count", len(addresses)))
	return addresses, nil
}

func (r *AddressRepository) FindByID(ctx context.Context, addressID int64) (*address.Address, error) {
	r.logger.DebugContext(ctx, "Querying address by ID", slog.Int64("addressID", addressID))

	query := fmt.Sprintf(`
        SELECT %s
        FROM addresses
        WHERE id = $1`, addressSelectColumns)

	var addr address.Address
	if err := scanAddress(r.db.QueryRow(ctx, query, addressID), &addr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Address not found", slog.Int64("addressID", addressID))
			return nil, address.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan address by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get address by ID: %w", apperrors.ErrDatabase, err)
	}

	return &addr, nil
}

func (r *AddressRepository) Create(ctx context.Context, addr *address.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert address", slog.Int64("customerID", addr.CustomerID))

	// Digest is recomputed from the current field values on every write.
	addr.ComputeFingerprint()

	query := `
        INSERT INTO addresses (street, street2, city, state, pincode, country, customer_id, address_hash)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		addr.Street,
		addr.Street2,
		addr.City,
		addr.State,
		addr.Pincode,
		addr.Country,
		addr.CustomerID,
		addr.Fingerprint,
	).Scan(&addr.AddressID)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, address.ErrDuplicateAddress) || errors.Is(translatedErr, apperrors.ErrDataIntegrity) {
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert address", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert address: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Address inserted successfully", slog.Int64("addressID", addr.AddressID))
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, addr *address.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update address", slog.Int64("addressID", addr.AddressID))

	addr.ComputeFingerprint()

	// The owner column is deliberately absent; an update never moves an
	// address between customers.
	query := `
        UPDATE addresses
        SET street = $1,
            street2 = NULLIF($2, ''),
            city = $3,
            state = $4,
            pincode = $5,
            country = $6,
            address_hash = $7
        WHERE id = $8`

	cmdTag, err := r.db.Exec(ctx, query,
		addr.Street,
		addr.Street2,
		addr.City,
		addr.State,
		addr.Pincode,
		addr.Country,
		addr.Fingerprint,
		addr.AddressID,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, address.ErrDuplicateAddress) || errors.Is(translatedErr, apperrors.ErrDataIntegrity) {
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to update address", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update address: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, address likely not found")
		return address.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Address updated successfully", slog.Int64("addressID", addr.AddressID))
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete address", slog.Int64("addressID", addressID))

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, addressID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete address", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete address: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, address likely not found")
		return address.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Address deleted successfully", slog.Int64("addressID", addressID))
	return nil
}
