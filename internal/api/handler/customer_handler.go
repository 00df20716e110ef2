package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const (
	msgCustomerCreated = "New Customer Created Successfully"
	msgCustomerUpdated = "Customer Updated Successfully"
	msgCustomerDeleted = "Customer Deleted Successfully!"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

func pageRequestFromQuery(r *http.Request) customer.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	req := customer.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}
	if q.Get("sortBy") == "" {
		req.SortBy = customer.DefaultSortField
	}
	return req.Normalize()
}

// ListCustomers handles GET /api/customers
// @Summary List customers
// @Description Retrieves one page of customer summaries (address count, no nested addresses).
// @Tags Customers
// @Produce json
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Param sortBy query string false "Sort field" default(firstName)
// @Param sortDir query string false "Sort direction (asc or desc)" default(asc)
// @Success 200 {object} dto.CustomerPageResponse "Page of customers"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	page, err := h.service.ListCustomers(r.Context(), pageRequestFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(page.Items)))
	respondJSON(w, http.StatusOK, dto.NewCustomerPageResponse(page))
}

// GetCustomer handles GET /api/customers/{customerID}
// @Summary Retrieve customer details
// @Description Retrieves the full customer projection, nested addresses included.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 400 {object} dto.BaseResponse "Invalid customer ID format"
// @Failure 404 {object} dto.BaseResponse "Customer not found"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "Customer not found", slog.Int64("customerID", customerID))
			respondEnvelope(w, http.StatusNotFound, dto.CodeCustomerNotFound,
				fmt.Sprintf("Customer not found with ID: %d", customerID))
			return
		}
		h.logger.ErrorContext(r.Context(), "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer retrieved successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// CreateCustomer handles POST /api/customers
// @Summary Create a new customer
// @Description Creates a customer together with exactly one address in one atomic unit; payloads with zero or several addresses are rejected. Duplicate email, phone and address are reported as distinct error codes.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer creation request"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Failure 400 {object} dto.BaseResponse "Invalid request payload"
// @Failure 409 {object} dto.BaseResponse "Duplicate email, phone or address"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CreateCustomerRequest
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

	created, err := h.service.CreateCustomer(r.Context(), req.ToCustomer())
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerResponse(created)
	resp.Message = msgCustomerCreated
	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", created.CustomerID))
	respondJSON(w, http.StatusCreated, resp)
}

// UpdateCustomer handles PUT /api/customers/{customerID}
// @Summary Update customer details
// @Description Overwrites firstName, lastName, email and phone. CreatedAt, the ID and the address collection are never touched.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.UpdateCustomerRequest true "Customer update request"
// @Success 200 {object} dto.CustomerResponse "Customer successfully updated"
// @Failure 400 {object} dto.BaseResponse "Invalid customer ID or payload"
// @Failure 404 {object} dto.BaseResponse "Customer not found"
// @Failure 409 {object} dto.BaseResponse "Duplicate email or phone"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /customers/{customerID} [put]
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.UpdateCustomerRequest
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

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondEnvelope(w, http.StatusNotFound, dto.CodeCustomerNotFound,
				fmt.Sprintf("Customer not found with ID: %d", customerID))
			return
		}
		h.logger.WarnContext(r.Context(), "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerResponse(updated)
	resp.Message = msgCustomerUpdated
	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, resp)
}

// DeleteCustomer handles DELETE /api/customers/{customerID}
// @Summary Delete a customer
// @Description Deletes the customer and every owned address in one transaction.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.BaseResponse "Customer successfully deleted"
// @Failure 400 {object} dto.BaseResponse "Invalid customer ID format"
// @Failure 404 {object} dto.BaseResponse "Customer not found"
// @Failure 500 {object} dto.BaseResponse "Delete failed"
// @Router /customers/{customerID} [delete]
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondEnvelope(w, http.StatusNotFound, dto.CodeCustomerNotFound,
				fmt.Sprintf("Customer not found with ID: %d", customerID))
			return
		}
		h.logger.ErrorContext(r.Context(), "Service failed to delete customer", slog.Any("error", err))
		respondEnvelope(w, http.StatusInternalServerError, dto.CodeDeleteError,
			fmt.Sprintf("Failed to delete customer: %v", err))
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.BaseResponse{Message: msgCustomerDeleted})
}

// SearchCustomers handles GET /api/customers/search
// @Summary Search customers
// @Description Case-insensitive substring search over firstName, lastName and email, plus substring match on phone.
// @Tags Customers
// @Produce json
// @Param query query string true "Free-text query"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Param sortBy query string false "Sort field" default(firstName)
// @Param sortDir query string false "Sort direction (asc or desc)" default(asc)
// @Success 200 {object} dto.CustomerPageResponse "Page of matching customers"
// @Failure 400 {object} dto.BaseResponse "Missing query parameter"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /customers/search [get]
func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	h.logger.DebugContext(r.Context(), "Received customer search request", slog.String("query", query))

	// An empty pattern would match every customer; the query parameter is
	// required, unlike the advanced search filters.
	if query == "" {
		h.logger.WarnContext(r.Context(), "Search rejected: missing query parameter")
		respondError(w, fmt.Errorf("%w: query parameter is required", apperrors.ErrValidation))
		return
	}

	page, err := h.service.SearchCustomers(r.Context(), query, pageRequestFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to search customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer search finished", slog.Int("count", len(page.Items)))
	respondJSON(w, http.StatusOK, dto.NewCustomerPageResponse(page))
}

// SearchCustomersByAddress handles GET /api/customers/search/advanced
// @Summary Search customers by address attributes
// @Description Finds customers owning at least one address matching the optional city, state and pincode substring filters. Each customer appears once regardless of how many of its addresses match.
// @Tags Customers
// @Produce json
// @Param city query string false "City substring filter"
// @Param state query string false "State substring filter"
// @Param pincode query string false "Pincode substring filter"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Param sortBy query string false "Sort field" default(firstName)
// @Param sortDir query string false "Sort direction (asc or desc)" default(asc)
// @Success 200 {object} dto.CustomerPageResponse "Page of matching customers"
// @Failure 500 {object} dto.BaseResponse "Internal server error"
// @Router /customers/search/advanced [get]
func (h *CustomerHandler) SearchCustomersByAddress(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := customer.AddressFilter{
		City:    q.Get("city"),
		State:   q.Get("state"),
		Pincode: q.Get("pincode"),
	}
	h.logger.DebugContext(r.Context(), "Received advanced search request",
		slog.String("city", filter.City), slog.String("state", filter.State), slog.String("pincode", filter.Pincode))

	page, err := h.service.SearchByAddress(r.Context(), filter, pageRequestFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to search customers by address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Advanced search finished", slog.Int("count", len(page.Items)))
	respondJSON(w, http.StatusOK, dto.NewCustomerPageResponse(page))
}
