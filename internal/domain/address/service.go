package address

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ErrOwnerNotFound reports that the customer an address operation refers to
// does not exist.
var ErrOwnerNotFound = errors.New("owning customer not found")

// OwnerResolver answers whether a customer id refers to an existing
// customer. The customer repository satisfies it.
type OwnerResolver interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}

// Fields carries the six caller-mutable address fields.
type Fields struct {
	Street  string
	Street2 string
	City    string
	State   string
	Pincode string
	Country string
}

func (f *Fields) trim() {
	f.Street = strings.TrimSpace(f.Street)
	f.Street2 = strings.TrimSpace(f.Street2)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Pincode = strings.TrimSpace(f.Pincode)
	f.Country = strings.TrimSpace(f.Country)
}

type AddressService interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]*Address, error)
	GetAddress(ctx context.Context, addressID int64) (*Address, error)
	CreateAddress(ctx context.Context, customerID int64, fields Fields) (*Address, error)
	UpdateAddress(ctx context.Context, addressID int64, fields Fields) (*Address, error)
	DeleteAddress(ctx context.Context, addressID int64) error
}

var _ AddressService = (*addressService)(nil)

type addressService struct {
	repo   AddressRepository
	owners OwnerResolver
	logger *slog.Logger
}

func NewAddressService(repo AddressRepository, owners OwnerResolver, logger *slog.Logger) AddressService {
	if repo == nil {
		panic("address repository cannot be nil")
	}
	if owners == nil {
		panic("owner resolver cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressService, using default stderr handler")
	}
	return &addressService{
		repo:   repo,
		owners: owners,
		logger: logger.With(slog.String("component", "addressService")),
	}
}

func (s *addressService) ListByCustomer(ctx context.Context, customerID int64) ([]*Address, error) {
	s.logger.DebugContext(ctx, "Listing addresses for customer", slog.Int64("customerID", customerID))

	addresses, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing addresses", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list addresses for customer %d: %w", customerID, err)
	}

	s.logger.DebugContext(ctx, "Addresses listed", slog.Int("count", len(addresses)))
	return addresses, nil
}

func (s *addressService) GetAddress(ctx context.Context, addressID int64) (*Address, error) {
	s.logger.DebugContext(ctx, "Fetching address", slog.Int64("addressID", addressID))

	addr, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Address not found by repository", slog.Int64("addressID", addressID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get address %d: %w", addressID, err)
	}

	return addr, nil
}

func (s *addressService) CreateAddress(ctx context.Context, customerID int64, fields Fields) (*Address, error) {
	s.logger.InfoContext(ctx, "Attempting to create address", slog.Int64("customerID", customerID))

	fields.trim()

	exists, err := s.owners.Exists(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to resolve owning customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve customer %d: %w", customerID, err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "Owning customer does not exist", slog.Int64("customerID", customerID))
		return nil, ErrOwnerNotFound
	}

	addr := &Address{
		Street:     fields.Street,
		Street2:    fields.Street2,
		City:       fields.City,
		State:      fields.State,
		Pincode:    fields.Pincode,
		Country:    fields.Country,
		CustomerID: customerID,
	}

	// The insert is attempted without a duplicate pre-check; the unique
	// index on the fingerprint is the sole conflict authority.
	if err := s.repo.Create(ctx, addr); err != nil {
		if errors.Is(err, ErrDuplicateAddress) {
			s.logger.WarnContext(ctx, "Duplicate address fingerprint on create")
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to create address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create address for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Address created", slog.Int64("addressID", addr.AddressID))
	return addr, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, addressID int64, fields Fields) (*Address, error) {
	s.logger.InfoContext(ctx, "Attempting to update address", slog.Int64("addressID", addressID))

	fields.trim()

	addr, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Address not found for update", slog.Int64("addressID", addressID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding address for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find address %d to update: %w", addressID, err)
	}

	addr.SetFields(fields.Street, fields.Street2, fields.City, fields.State, fields.Pincode, fields.Country)

	if err := s.repo.Update(ctx, addr); err != nil {
		if errors.Is(err, ErrDuplicateAddress) {
			s.logger.WarnContext(ctx, "Duplicate address fingerprint on update")
			return nil, err
		}
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to update address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update address %d: %w", addressID, err)
	}

	s.logger.InfoContext(ctx, "Address updated", slog.Int64("addressID", addr.AddressID))
	return addr, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, addressID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete address", slog.Int64("addressID", addressID))

	if err := s.repo.Delete(ctx, addressID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Address not found for delete", slog.Int64("addressID", addressID))
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to delete address", slog.Any("error", err))
		return fmt.Errorf("failed to delete address %d: %w", addressID, err)
	}

	s.logger.InfoContext(ctx, "Address deleted", slog.Int64("addressID", addressID))
	return nil
}
