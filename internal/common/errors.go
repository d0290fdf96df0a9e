package common

import (
	"fmt"
)

// TransportError marks a network or non-2xx HTTP failure. The batch or lookup
// it belongs to is treated as entirely unavailable.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure calling %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError marks a response body that could not be decoded.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
