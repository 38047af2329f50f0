package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a machine-readable error category exposed to API clients.
type ErrorCode string

const (
	CodeValidationError     ErrorCode = "VALIDATION_ERROR"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
	CodeInvalidToken        ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired        ErrorCode = "TOKEN_EXPIRED"
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	CodeProductOutOfStock   ErrorCode = "PRODUCT_OUT_OF_STOCK"
)

// FieldError describes a single validation violation, with the field given as
// a dotted path into the offending structure.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// AppError is the single typed error that crosses layer boundaries. Each error
// kind pairs a fixed HTTP status with a fixed code; Fields is non-empty only
// for VALIDATION_ERROR.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Fields  []FieldError
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// AsAppError unwraps err into an *AppError when one is present in the chain.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidationError,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func NewUnauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return &AppError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NewNotFound(resource string) *AppError {
	if resource == "" {
		resource = "Resource"
	}
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: resource + " not found"}
}

func NewConflict(message string) *AppError {
	if message == "" {
		message = "Conflict"
	}
	return &AppError{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

func NewInvalidToken(message string) *AppError {
	if message == "" {
		message = "Invalid or expired token"
	}
	return &AppError{Status: http.StatusUnauthorized, Code: CodeInvalidToken, Message: message}
}

func NewTokenExpired(message string) *AppError {
	if message == "" {
		message = "Token has expired"
	}
	return &AppError{Status: http.StatusUnauthorized, Code: CodeTokenExpired, Message: message}
}

func NewInsufficientBalance(message string) *AppError {
	if message == "" {
		message = "Insufficient balance"
	}
	return &AppError{Status: http.StatusBadRequest, Code: CodeInsufficientBalance, Message: message}
}

func NewOutOfStock(message string) *AppError {
	if message == "" {
		message = "Product out of stock"
	}
	return &AppError{Status: http.StatusBadRequest, Code: CodeProductOutOfStock, Message: message}
}

func NewInternal(message string) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return &AppError{Status: http.StatusInternalServerError, Code: CodeInternalServerError, Message: message}
}
