package service

import "errors"

// Errors caused by the caller's input. All of them map to 400 Bad Request
// and their messages are safe to show to the caller.
var (
	ErrMissingParameter     = errors.New("specify parameters A and B")
	ErrNonNumericParameter  = errors.New("A and B must be numeric")
	ErrNonPositiveParameter = errors.New("A and B must be positive numbers")
	ErrZeroDivisor          = errors.New("cannot divide by zero")
)

var badRequestErrors = []error{
	ErrMissingParameter,
	ErrNonNumericParameter,
	ErrNonPositiveParameter,
	ErrZeroDivisor,
}

// IsBadRequest reports whether err is, or wraps, one of the input errors.
func IsBadRequest(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
