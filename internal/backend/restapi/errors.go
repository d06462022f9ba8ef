package restapi

import (
	"errors"
	"fmt"
)

// ErrNoBaseURL is returned by New when no API URL is configured.
var ErrNoBaseURL = errors.New("api url not configured")

// RequestError reports a non-2xx response from the task server.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error // *googleapi.Error carrying the response body
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: HTTP error, status %d", e.Op, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not have the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0 if err is not a
// RequestError.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
