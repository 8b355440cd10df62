package services

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "VALIDATION"
	ErrorCodeNotFound   ErrorCode = "NOT_FOUND"
)

// Error is returned for failures the caller can act on.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &Error{Code: ErrorCodeValidation, Msg: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Code: ErrorCodeNotFound, Msg: msg}
}

func IsValidationError(err error) bool {
	return hasCode(err, ErrorCodeValidation)
}

func IsNotFoundError(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == code
}

// ErrNoStatistics is returned by the statistics queries when nothing has been recorded.
var ErrNoStatistics = errors.New("no data")
