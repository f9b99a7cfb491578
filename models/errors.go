package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeFetchTimeout    = "FETCH_TIMEOUT"
	ErrCodeFetchStatus     = "FETCH_STATUS"
	ErrCodeFetchConnection = "FETCH_CONNECTION"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FetchError is the terminal failure of a fetch call after all retries.
// It implements the error interface and supports error wrapping via Unwrap.
type FetchError struct {
	Code     string // one of the ErrCodeFetch* constants
	URL      string
	Attempts int
	Err      error // last observed error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s after %d attempts: %v", e.Code, e.URL, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s: %s after %d attempts", e.Code, e.URL, e.Attempts)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(code, url string, attempts int, err error) *FetchError {
	return &FetchError{Code: code, URL: url, Attempts: attempts, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *FetchError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: fmt.Sprintf("fetch %s failed after %d attempts", e.URL, e.Attempts)}
}
