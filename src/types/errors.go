package types

// APIError is a caller-visible failure with a stable code. None of these are
// retryable without changed input.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrInvalidRange = &APIError{Code: "InvalidRange", Message: "check-out date must be after check-in date"}
	ErrCageNotFound = &APIError{Code: "CageNotFound", Message: "cage not found"}
	// ErrCageUnavailable is distinct from generic validation so a client can re-search.
	ErrCageUnavailable     = &APIError{Code: "CageUnavailable", Message: "cage is not available for the chosen dates"}
	ErrServiceNotFound     = &APIError{Code: "ServiceNotFound", Message: "service not found"}
	ErrAppointmentNotFound = &APIError{Code: "AppointmentNotFound", Message: "appointment not found"}
	ErrPaymentNotVerified  = &APIError{Code: "PaymentNotVerified", Message: "payment must be verified before changing status to in progress or completed"}
	ErrMissingFields       = &APIError{Code: "MissingFields", Message: "required fields are missing or invalid"}
)
