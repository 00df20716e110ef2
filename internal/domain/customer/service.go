package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"customer-registry/internal/domain/address"

	"customer-registry/internal/pkg/apperrors"
)

type CustomerService interface {
	ListCustomers(ctx context.Context, page PageRequest) (*Page, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, email, phone string) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	SearchCustomers(ctx context.Context, query string, page PageRequest) (*Page, error)
	SearchByAddress(ctx context.Context, filter AddressFilter, page PageRequest) (*Page, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo      CustomerRepository
	addresses address.AddressRepository
	logger    *slog.Logger
}

func NewCustomerService(repo CustomerRepository, addresses address.AddressRepository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if addresses == nil {
		panic("address repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	return &customerService{
		repo:      repo,
		addresses: addresses,
		logger:    logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) ListCustomers(ctx context.Context, page PageRequest) (*Page, error) {
	page = page.Normalize()
	s.logger.DebugContext(ctx, "Listing customers",
		slog.Int("page", page.Page), slog.Int("size", page.Size),
		slog.String("sortBy", page.SortBy), slog.String("sortDir", page.SortDir))

	result, err := s.repo.FindPage(ctx, page)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.DebugContext(ctx, "Customers listed", slog.Int("count", len(result.Items)), slog.Int64("total", result.TotalElements))
	return result, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.DebugContext(ctx, "Fetching customer", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by repository", slog.Int64("customerID", customerID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	if err := s.attachAddresses(ctx, cust); err != nil {
		return nil, err
	}

	return cust, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create customer")

	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	cust.FirstName = strings.TrimSpace(cust.FirstName)
	cust.LastName = strings.TrimSpace(cust.LastName)
	cust.Email = strings.TrimSpace(cust.Email)
	cust.Phone = strings.TrimSpace(cust.Phone)
	// Creation persists exactly one address; anything else is rejected
	// rather than silently discarded.
	if len(cust.Addresses) != 1 {
		s.logger.WarnContext(ctx, "Create rejected: exactly one address must be supplied",
			slog.Int("addressCount", len(cust.Addresses)))
		return nil, fmt.Errorf("%w: exactly one address is required", apperrors.ErrInvalidArgument)
	}

	// Customer row and its address go in as one atomic unit; the
	// repository links the address to the generated id before its insert.
	first := cust.Addresses[0]
	if err := s.repo.CreateWithAddress(ctx, cust, first); err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicatePhone) || errors.Is(err, address.ErrDuplicateAddress) {
			s.logger.WarnContext(ctx, "Uniqueness conflict on customer create", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to create customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	cust.Addresses = []*address.Address{first}
	cust.AddressCount = 1

	s.logger.InfoContext(ctx, "Customer created", slog.Int64("customerID", cust.CustomerID))
	return cust, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, email, phone string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for update", slog.Int64("customerID", customerID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	cust.SetDetails(
		strings.TrimSpace(firstName),
		strings.TrimSpace(lastName),
		strings.TrimSpace(email),
		strings.TrimSpace(phone),
	)

	if err := s.repo.Update(ctx, cust); err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicatePhone) {
			s.logger.WarnContext(ctx, "Uniqueness conflict on customer update", slog.Any("error", err))
			return nil, err
		}
		if errors.Is(err, ErrNotFound) {
			s.logger.ErrorContext(ctx, "Customer disappeared before update completed")
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	if err := s.attachAddresses(ctx, cust); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Customer updated", slog.Int64("customerID", customerID))
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	if err := s.repo.DeleteWithAddresses(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for delete", slog.Int64("customerID", customerID))
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Customer and owned addresses deleted", slog.Int64("customerID", customerID))
	return nil
}

func (s *customerService) SearchCustomers(ctx context.Context, query string, page PageRequest) (*Page, error) {
	page = page.Normalize()
	query = strings.TrimSpace(query)
	s.logger.DebugContext(ctx, "Searching customers", slog.String("query", query),
		slog.Int("page", page.Page), slog.Int("size", page.Size))

	result, err := s.repo.Search(ctx, query, page)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error searching customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	s.logger.DebugContext(ctx, "Customer search finished", slog.Int("count", len(result.Items)))
	return result, nil
}

func (s *customerService) SearchByAddress(ctx context.Context, filter AddressFilter, page PageRequest) (*Page, error) {
	page = page.Normalize()
	filter.City = strings.TrimSpace(filter.City)
	filter.State = strings.TrimSpace(filter.State)
	filter.Pincode = strings.TrimSpace(filter.Pincode)
	s.logger.DebugContext(ctx, "Searching customers by address attributes",
		slog.String("city", filter.City), slog.String("state", filter.State), slog.String("pincode", filter.Pincode))

	result, err := s.repo.SearchByAddress(ctx, filter, page)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error searching customers by address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to search customers by address: %w", err)
	}

	s.logger.DebugContext(ctx, "Address search finished", slog.Int("count", len(result.Items)))
	return result, nil
}

func (s *customerService) attachAddresses(ctx context.Context, cust *Customer) error {
	addresses, err := s.addresses.FindByCustomerID(ctx, cust.CustomerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error loading owned addresses", slog.Any("error", err))
		return fmt.Errorf("failed to load addresses for customer %d: %w", cust.CustomerID, err)
	}
	cust.Addresses = addresses
	cust.AddressCount = int64(len(addresses))
	return nil
}
