package remote

import (
	"errors"
	"fmt"

	"github.com/andy/rosterdash/internal/domain"
)

// ErrTransport matches every *TransportError
var ErrTransport = errors.New("transport error")

// TransportError reports a network failure, an unexpected status or an
// unreadable payload. StatusCode is 0 when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// NotFoundError reports that the remote store has no client with ID
type NotFoundError struct {
	Op string
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: client %s not found", e.Op, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return domain.ErrNotFound
}
