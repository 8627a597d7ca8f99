package domain

import "fmt"

// Error codes returned in the response envelope.
const (
	ErrMissingProcedureCode = "MISSING_PROCEDURE_CODE"
	ErrMissingLocation      = "MISSING_LOCATION"
	ErrMissingCondition     = "MISSING_CONDITION"
	ErrMissingQuery         = "MISSING_QUERY"
	ErrMissingParams        = "MISSING_PARAMS"
	ErrMissingState         = "MISSING_STATE"
	ErrInvalidDevice        = "INVALID_DEVICE"
	ErrDestinationNotFound  = "DESTINATION_NOT_FOUND"
	ErrProviderNotFound     = "PROVIDER_NOT_FOUND"

	ErrProviderFetch     = "PROVIDER_FETCH_ERROR"
	ErrPriceFetch        = "PRICE_FETCH_ERROR"
	ErrDrugAPI           = "DRUG_API_ERROR"
	ErrEmergencyFetch    = "EMERGENCY_FETCH_ERROR"
	ErrTrialsFetch       = "TRIALS_FETCH_ERROR"
	ErrTourismFetch      = "TOURISM_FETCH_ERROR"
	ErrTelemedicineFetch = "TELEMEDICINE_FETCH_ERROR"
	ErrInsuranceFetch    = "INSURANCE_FETCH_ERROR"
	ErrWearableSync      = "WEARABLE_SYNC_ERROR"
)

// ValidationError is a missing or malformed request parameter. Handlers map
// it to HTTP 400.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a ValidationError with an envelope error code.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NotFoundError is a reference to an entity that does not exist. Handlers
// map it to HTTP 404.
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFoundError creates a NotFoundError with an envelope error code.
func NewNotFoundError(code, message string) *NotFoundError {
	return &NotFoundError{Code: code, Message: message}
}

// UnsupportedDeviceError is a wearable sync request naming a device type
// outside the supported catalog. Handlers map it to HTTP 400.
type UnsupportedDeviceError struct {
	DeviceType string
}

func (e *UnsupportedDeviceError) Error() string {
	return fmt.Sprintf("unsupported device type: %s", e.DeviceType)
}

// UpstreamError wraps a failed sub-fetch with the name of the source that
// failed. Handlers map it to HTTP 500.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
