package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers dial failures, timeouts and non-2xx responses.
	ErrTransport = errors.New("backend transport error")

	// ErrParse covers bodies that are not valid JSON or violate the contract,
	// such as parallel arrays of different lengths.
	ErrParse = errors.New("backend parse error")
)

// RequestError records which endpoint failed. It unwraps to ErrTransport or
// ErrParse and to the underlying cause.
type RequestError struct {
	Path   string
	Status int
	Kind   error
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v: status %d: %v", e.Path, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func transportErr(path string, status int, err error) error {
	return &RequestError{Path: path, Status: status, Kind: ErrTransport, Err: err}
}

func parseErr(path string, err error) error {
	return &RequestError{Path: path, Kind: ErrParse, Err: err}
}
