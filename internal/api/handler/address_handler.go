package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const (
	msgAddressCreated = "New Address Created Successfully"
	msgAddressUpdated = "Address Updated Successfully"
	msgAddressDeleted = "Address Deleted Successfully!"
)

type AddressHandler struct {
	service address.AddressService
	logger  *slog.Logger
}

func NewAddressHandler(s address.AddressService, l *slog.Logger) *AddressHandler {
	if s == nil {
		panic("address service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AddressHandler{
		service: s,
		logger:  l.With("component", "AddressHandler"),
	}
}

func getAddressIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "addressID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: addressID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid addressID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// ListAddresses handles GET /api/addresses/customer/{customerID}
// @Summary List addresses for a customer
// @Description Retrieves every address owned by the customer; an empty list for a customer without addresses.
// @Tags Addresses
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.AddressResponse "Addresses retrieved"
// @Failure 400 {object} dto.BaseResponse "Invalid customer ID format"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /addresses/customer/{customerID} [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	addresses, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list addresses", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Addresses listed successfully", slog.Int("count", len(addresses)))
	respondJSON(w, http.StatusOK, dto.NewAddressListResponse(addresses))
}

// GetAddress handles GET /api/addresses/{addressID}
// @Summary Retrieve a single address
// @Tags Addresses
// @Produce json
// @Param addressID path int true "Address ID" Minimum(1)
// @Success 200 {object} dto.AddressResponse "Address retrieved"
// @Failure 400 {object} dto.BaseResponse "Invalid address ID format"
// @Failure 404 {object} dto.BaseResponse "Address not found"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /addresses/{addressID} [get]
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := getAddressIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get address ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	addr, err := h.service.GetAddress(r.Context(), addressID)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "Address not found", slog.Int64("addressID", addressID))
			respondEnvelope(w, http.StatusNotFound, dto.CodeAddressNotFound,
				fmt.Sprintf("Address not found with ID: %d", addressID))
			return
		}
		h.logger.ErrorContext(r.Context(), "Service failed to get address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Address retrieved successfully", slog.Int64("addressID", addressID))
	respondJSON(w, http.StatusOK, dto.NewAddressResponse(addr))
}

// CreateAddress handles POST /api/addresses/customer/{customerID}
// @Summary Create an address for a customer
// @Description Resolves the owning customer, fingerprints the submitted fields and inserts the address. A fingerprint collision with any existing address is rejected.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.AddressRequest true "Address creation request"
// @Success 201 {object} dto.AddressResponse "Address successfully created"
// @Failure 400 {object} dto.BaseResponse "Invalid request payload"
// @Failure 404 {object} dto.BaseResponse "Customer not found"
// @Failure 409 {object} dto.BaseResponse "Duplicate address"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /addresses/customer/{customerID} [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	addr, err := h.service.CreateAddress(r.Context(), customerID, req.Fields())
	if err != nil {
		if errors.Is(err, address.ErrOwnerNotFound) {
			respondEnvelope(w, http.StatusNotFound, dto.CodeCustomerNotFound,
				fmt.Sprintf("Customer not found with ID: %d", customerID))
			return
		}
		h.logger.WarnContext(r.Context(), "Service failed to create address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAddressResponse(addr)
	resp.Message = msgAddressCreated
	h.logger.InfoContext(r.Context(), "Address created successfully", slog.Int64("addressID", addr.AddressID))
	respondJSON(w, http.StatusCreated, resp)
}

// UpdateAddress handles PUT /api/addresses/{addressID}
// @Summary Update an address
// @Description Overwrites the six address fields and recomputes the fingerprint. The owning customer is never changed.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param addressID path int true "Address ID" Minimum(1)
// @Param request body dto.AddressRequest true "Address update request"
// @Success 200 {object} dto.AddressResponse "Address successfully updated"
// @Failure 400 {object} dto.BaseResponse "Invalid request payload"
// @Failure 404 {object} dto.BaseResponse "Address not found"
// @Failure 409 {object} dto.BaseResponse "Duplicate address"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /addresses/{addressID} [put]
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := getAddressIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get address ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	addr, err := h.service.UpdateAddress(r.Context(), addressID, req.Fields())
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			respondEnvelope(w, http.StatusNotFound, dto.CodeAddressNotFound,
				fmt.Sprintf("Address not found with ID: %d", addressID))
			return
		}
		h.logger.WarnContext(r.Context(), "Service failed to update address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAddressResponse(addr)
	resp.Message = msgAddressUpdated
	h.logger.InfoContext(r.Context(), "Address updated successfully", slog.Int64("addressID", addressID))
	respondJSON(w, http.StatusOK, resp)
}

// DeleteAddress handles DELETE /api/addresses/{addressID}
// @Summary Delete an address
// @Description Removes the address; the owning customer is unaffected.
// @Tags Addresses
// @Produce json
// @Param addressID path int true "Address ID" Minimum(1)
// @Success 200 {object} dto.BaseResponse "Address successfully deleted"
// @Failure 400 {object} dto.BaseResponse "Invalid address ID format"
// @Failure 404 {object} dto.BaseResponse "Address not found"
// @Failure 500 {object} dto.BaseResponse "Delete failed"
// @Router /addresses/{addressID} [delete]
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := getAddressIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get address ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.DeleteAddress(r.Context(), addressID); err != nil {
		if errors.Is(err, address.ErrNotFound) {
			respondEnvelope(w, http.StatusNotFound, dto.CodeAddressNotFound,
				fmt.Sprintf("Address not found with ID: %d", addressID))
			return
		}
		h.logger.ErrorContext(r.Context(), "Service failed to delete address", slog.Any("error", err))
		respondEnvelope(w, http.StatusInternalServerError, dto.CodeDeleteError,
			fmt.Sprintf("Failed to delete address: %v", err))
		return
	}

	h.logger.InfoContext(r.Context(), "Address deleted successfully", slog.Int64("addressID", addressID))
	respondJSON(w, http.StatusOK, dto.BaseResponse{Message: msgAddressDeleted})
}
