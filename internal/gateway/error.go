package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind separates network-level failures from undecodable responses.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindProtocol  ErrorKind = "protocol"
)

var (
	ErrHTTPStatus    = errors.New("gateway returned non-2xx status")
	ErrEmptyBody     = errors.New("gateway returned empty body")
	ErrMalformedBody = errors.New("gateway returned malformed JSON")
)

// Error is returned by Client.Send once the retry policy is exhausted.
type Error struct {
	Kind       ErrorKind
	Path       string
	Attempts   int
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s %s failed after %d attempt(s) (http %d): %v", e.Kind, e.Path, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway %s %s failed after %d attempt(s): %v", e.Kind, e.Path, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsProtocol reports whether err is a gateway Error caused by an undecodable body.
func IsProtocol(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindProtocol
}
