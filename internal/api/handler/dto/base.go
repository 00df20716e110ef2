package dto

// BaseResponse is the envelope every operation returns. ErrorCode and
// ErrorMessage are set on failures; Message carries the confirmation text
// of a successful mutation, so callers can tell a silent read apart from
// an acknowledged write.
type BaseResponse struct {
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Message      string `json:"message,omitempty"`
}

func (b *BaseResponse) SetError(code, message string) {
	b.ErrorCode = code
	b.ErrorMessage = message
}

// Error codes of the envelope.
const (
	CodeCustomerNotFound    = "CUSTOMER_NOT_FOUND"
	CodeAddressNotFound     = "ADDRESS_NOT_FOUND"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeDuplicatePhone      = "DUPLICATE_PHONE"
	CodeDuplicateAddress    = "DUPLICATE_ADDRESS"
	CodeDataIntegrityError  = "DATA_INTEGRITY_ERROR"
	CodeDeleteError         = "DELETE_ERROR"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

func NewErrorResponse(code, message string) BaseResponse {
	return BaseResponse{ErrorCode: code, ErrorMessage: message}
}
