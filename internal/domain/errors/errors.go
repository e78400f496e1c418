package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrImmutableField       = errors.New("identity field is locked")
	ErrAlreadyOnboarded     = errors.New("user already onboarded")
	ErrNotOnboarded         = errors.New("user not onboarded")
	ErrOnboardingInProgress = errors.New("onboarding already in progress")
	ErrDuplicateLink        = errors.New("bank account already linked")
	ErrProviderTransport    = errors.New("provider unreachable")
	ErrProviderAuth         = errors.New("provider rejected credentials")
	ErrProviderRejected     = errors.New("provider rejected request")
	ErrProviderUnavailable  = errors.New("provider unavailable")
)

// Stable error codes returned to clients
const (
	CodeNotFound            = "ERR_NOT_FOUND"
	CodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	CodeInvalidInput        = "ERR_INVALID_INPUT"
	CodeUnauthorized        = "ERR_UNAUTHORIZED"
	CodeForbidden           = "ERR_FORBIDDEN"
	CodeImmutableField      = "ERR_IMMUTABLE_FIELD"
	CodeAlreadyOnboarded    = "ERR_ALREADY_ONBOARDED"
	CodeNotOnboarded        = "ERR_NOT_ONBOARDED"
	CodeDuplicateLink       = "ERR_DUPLICATE_LINK"
	CodeProviderTransport   = "ERR_PROVIDER_TRANSPORT"
	CodeProviderAuth        = "ERR_PROVIDER_AUTH"
	CodeProviderRejected    = "ERR_PROVIDER_REJECTED"
	CodeProviderUnavailable = "ERR_PROVIDER_UNAVAILABLE"
	CodeInternalError       = "ERR_INTERNAL"
)

// AppError represents an application error with HTTP status and stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(code, message string) *AppError {
	return NewAppError(http.StatusConflict, code, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}
