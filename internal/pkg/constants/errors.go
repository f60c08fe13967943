package constants

import (
	"errors"
	"net/http"
)

// CodedError is an error that knows which HTTP status it should be reported with.
type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound           = NewCodedError("not found", http.StatusNotFound)
	ErrUnauthorized         = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrConfigurationMissing = NewCodedError("store configuration is missing", http.StatusInternalServerError)
	ErrIndicatorNotFound    = NewCodedError("indicator not found", http.StatusNotFound)
	ErrIndicatorExists      = NewCodedError("indicator already exists", http.StatusConflict)
	ErrSyncInProgress       = NewCodedError("sync already in progress", http.StatusConflict)
	ErrBadRequest           = NewCodedError("bad request", http.StatusBadRequest)

	// ErrNoData is reported per indicator when the provider has nothing for it.
	ErrNoData = errors.New("No data found from BPS API. Check Variable ID.")
)
