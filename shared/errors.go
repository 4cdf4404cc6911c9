package shared

import (
	"errors"
	"net/http"
)

// AppError carries an HTTP status classification alongside the underlying
// error so handlers can return errors straight to the fiber error handler.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func newAppError(statusCode int, code string, err error, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Err:        err,
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return newAppError(http.StatusNotFound, "NOT_FOUND", err, message)
}

// NewInvalidStateError signals an operation attempted out of order, e.g.
// claiming a quest with no progress record.
func NewInvalidStateError(err error, message string) *AppError {
	return newAppError(http.StatusConflict, "INVALID_STATE", err, message)
}

func NewAlreadyClaimedError(err error, message string) *AppError {
	return newAppError(http.StatusConflict, "ALREADY_CLAIMED", err, message)
}

func NewNotCompletedError(err error, message string) *AppError {
	return newAppError(http.StatusConflict, "NOT_COMPLETED", err, message)
}

func NewAlreadyCompletedError(err error, message string) *AppError {
	return newAppError(http.StatusConflict, "ALREADY_COMPLETED", err, message)
}

func NewBadRequestError(err error, message string) *AppError {
	return newAppError(http.StatusBadRequest, "BAD_REQUEST", err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return newAppError(http.StatusUnauthorized, "UNAUTHORIZED", err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return newAppError(http.StatusForbidden, "FORBIDDEN", err, message)
}

func NewInternalError(err error, message string) *AppError {
	return newAppError(http.StatusInternalServerError, "INTERNAL_ERROR", err, message)
}
