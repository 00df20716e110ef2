package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"errorCode":"INTERNAL_SERVER_ERROR","errorMessage":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondEnvelope(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondError classifies a service failure into the envelope vocabulary.
// Handlers that can name the missing resource respond with the richer
// not-found message themselves before falling back to this.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		respondEnvelope(w, http.StatusNotFound, dto.CodeCustomerNotFound, "Customer not found")
	case errors.Is(err, address.ErrNotFound):
		respondEnvelope(w, http.StatusNotFound, dto.CodeAddressNotFound, "Address not found")
	case errors.Is(err, address.ErrOwnerNotFound):
		respondEnvelope(w, http.StatusNotFound, dto.CodeCustomerNotFound, "Customer not found")
	case errors.Is(err, customer.ErrDuplicateEmail):
		respondEnvelope(w, http.StatusConflict, dto.CodeDuplicateEmail, "Email address is already in use")
	case errors.Is(err, customer.ErrDuplicatePhone):
		respondEnvelope(w, http.StatusConflict, dto.CodeDuplicatePhone, "Phone number is already in use")
	case errors.Is(err, address.ErrDuplicateAddress):
		respondEnvelope(w, http.StatusConflict, dto.CodeDuplicateAddress, "Address is already associated with a customer")
	case errors.Is(err, apperrors.ErrDataIntegrity):
		respondEnvelope(w, http.StatusConflict, dto.CodeDataIntegrityError, "Data integrity violation")
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		respondEnvelope(w, http.StatusBadRequest, dto.CodeValidationError, err.Error())
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
		respondEnvelope(w, http.StatusInternalServerError, dto.CodeInternalServerError, err.Error())
	}
}
