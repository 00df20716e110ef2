package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

// sortColumns maps the projection sort fields onto customer columns. Only
// values from this map are ever interpolated into ORDER BY.
var sortColumns = map[string]string{
	"id":        "c.id",
	"firstName": "c.first_name",
	"lastName":  "c.last_name",
	"email":     "c.email",
	"phone":     "c.phone",
	"createdAt": "c.created_at",
}

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

var _ address.OwnerResolver = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func orderByClause(page customer.PageRequest) string {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = sortColumns[customer.DefaultSortField]
	}
	direction := "ASC"
	if page.SortDir == "desc" {
		direction = "DESC"
	}
	if column == "c.id" {
		return fmt.Sprintf("ORDER BY %s %s", column, direction)
	}
	// The sort columns are not unique, and LIMIT/OFFSET gives no stable
	// order among peer rows. The id tiebreaker keeps consecutive pages
	// disjoint when several customers share the same sort value.
	return fmt.Sprintf("ORDER BY %s %s, c.id %s", column, direction, direction)
}

const customerSelectColumns = `c.id, c.first_name, c.last_name, c.phone, c.email, c.created_at,
        (SELECT COUNT(*) FROM addresses a WHERE a.customer_id = c.id) AS address_count`

func scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		err := rows.Scan(
			&cust.CustomerID,
			&cust.FirstName,
			&cust.LastName,
			&cust.Phone,
			&cust.Email,
			&cust.CreatedAt,
			&cust.AddressCount,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &cust)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) FindPage(ctx context.Context, page customer.PageRequest) (*customer.Page, error) {
	r.logger.DebugContext(ctx, "Querying customer page",
		slog.Int("page", page.Page), slog.Int("size", page.Size))

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM customers c
        %s
        LIMIT $1 OFFSET $2`, customerSelectColumns, orderByClause(page))

	rows, err := r.db.Query(ctx, query, page.Size, page.Offset())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customer page", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customer page: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers, err := scanCustomerRows(rows)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to scan customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan customer rows: %w", apperrors.ErrDatabase, err)
	}

	return &customer.Page{Items: customers, Page: page.Page, Size: page.Size, TotalElements: total}, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Querying customer by ID", slog.Int64("customerID", customerID))

	query := fmt.Sprintf(`
        SELECT %s
        FROM customers c
        WHERE c.id = $1`, customerSelectColumns)

	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&cust.CustomerID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Phone,
		&cust.Email,
		&cust.CreatedAt,
		&cust.AddressCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	return &cust, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, customerID).Scan(&exists)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to check customer existence", slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check customer existence: %w", apperrors.ErrDatabase, err)
	}
	return exists, nil
}

func (r *CustomerRepository) CreateWithAddress(ctx context.Context, cust *customer.Customer, first *address.Address) error {
	if cust == nil || first == nil {
		return fmt.Errorf("%w: customer and first address cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert customer with first address")

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	defer r.rollback(ctx, tx)

	customerInsert := `
        INSERT INTO customers (first_name, last_name, phone, email, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at`

	err = tx.QueryRow(ctx, customerInsert,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Email,
	).Scan(&cust.CustomerID, &cust.CreatedAt)
	if err != nil {
		return translateDBError(err, r.logger)
	}

	// The addresses table requires a non-null owner, so the link is set
	// from the freshly generated id before the second insert. The digest
	// is recomputed from the submitted field values, never trusted from
	// the caller.
	first.CustomerID = cust.CustomerID
	first.ComputeFingerprint()

	addressInsert := `
        INSERT INTO addresses (street, street2, city, state, pincode, country, customer_id, address_hash)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
        RETURNING id`

	err = tx.QueryRow(ctx, addressInsert,
		first.Street,
		first.Street2,
		first.City,
		first.State,
		first.Pincode,
		first.Country,
		first.CustomerID,
		first.Fingerprint,
	).Scan(&first.AddressID)
	if err != nil {
		return translateDBError(err, r.logger)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit customer creation", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully",
		slog.Int64("customerID", cust.CustomerID), slog.Int64("addressID", first.AddressID))
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.CustomerID))

	query := `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            email = $3,
            phone = $4
        WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Email,
		cust.Phone,
		cust.CustomerID,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, customer.ErrDuplicateEmail) || errors.Is(translatedErr, customer.ErrDuplicatePhone) ||
			errors.Is(translatedErr, apperrors.ErrDataIntegrity) {
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer updated successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) DeleteWithAddresses(ctx context.Context, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer with owned addresses", slog.Int64("customerID", customerID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	defer r.rollback(ctx, tx)

	// Explicit two-step cascade: child rows first, then the owner.
	addressTag, err := tx.Exec(ctx, `DELETE FROM addresses WHERE customer_id = $1`, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete owned addresses", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete owned addresses: %w", apperrors.ErrDatabase, err)
	}

	customerTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if customerTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit customer deletion", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully",
		slog.Int64("customerID", customerID), slog.Int64("addressesDeleted", addressTag.RowsAffected()))
	return nil
}

func (r *CustomerRepository) Search(ctx context.Context, query string, page customer.PageRequest) (*customer.Page, error) {
	r.logger.DebugContext(ctx, "Searching customers", slog.String("query", query))

	pattern := "%" + query + "%"
	where := `
        WHERE LOWER(c.first_name) LIKE LOWER($1)
           OR LOWER(c.last_name) LIKE LOWER($1)
           OR LOWER(c.email) LIKE LOWER($1)
           OR c.phone LIKE $1`

	var total int64
	countQuery := `SELECT COUNT(*) FROM customers c` + where
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count search results", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count search results: %w", apperrors.ErrDatabase, err)
	}

	pageQuery := fmt.Sprintf(`
        SELECT %s
        FROM customers c%s
        %s
        LIMIT $2 OFFSET $3`, customerSelectColumns, where, orderByClause(page))

	rows, err := r.db.Query(ctx, pageQuery, pattern, page.Size, page.Offset())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customer search", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customer search: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers, err := scanCustomerRows(rows)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to scan customer search rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan customer search rows: %w", apperrors.ErrDatabase, err)
	}

	return &customer.Page{Items: customers, Page: page.Page, Size: page.Size, TotalElements: total}, nil
}

func (r *CustomerRepository) SearchByAddress(ctx context.Context, filter customer.AddressFilter, page customer.PageRequest) (*customer.Page, error) {
	r.logger.DebugContext(ctx, "Searching customers by address attributes",
		slog.String("city", filter.City), slog.String("state", filter.State), slog.String("pincode", filter.Pincode))

	// EXISTS keeps a customer with several matching addresses to a single
	// row; an empty filter value matches everything.
	where := `
        WHERE EXISTS (
            SELECT 1 FROM addresses a
            WHERE a.customer_id = c.id
              AND ($1 = '' OR a.city ILIKE '%' || $1 || '%')
              AND ($2 = '' OR a.state ILIKE '%' || $2 || '%')
              AND ($3 = '' OR a.pincode LIKE '%' || $3 || '%'))`

	var total int64
	countQuery := `SELECT COUNT(*) FROM customers c` + where
	if err := r.db.QueryRow(ctx, countQuery, filter.City, filter.State, filter.Pincode).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count address search results", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count address search results: %w", apperrors.ErrDatabase, err)
	}

	pageQuery := fmt.Sprintf(`
        SELECT %s
        FROM customers c%s
        %s
        LIMIT $4 OFFSET $5`, customerSelectColumns, where, orderByClause(page))

	rows, err := r.db.Query(ctx, pageQuery, filter.City, filter.State, filter.Pincode, page.Size, page.Offset())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query address search", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query address search: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers, err := scanCustomerRows(rows)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to scan address search rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to scan address search rows: %w", apperrors.ErrDatabase, err)
	}

	return &customer.Page{Items: customers, Page: page.Page, Size: page.Size, TotalElements: total}, nil
}

func (r *CustomerRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
	}
}
