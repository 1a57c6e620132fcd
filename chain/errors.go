package chain

import (
	"errors"
	"fmt"
)

// TransientError marks a transport-level failure the caller should retry:
// timeouts, refused connections, protocol errors and undecodable payloads.
// The watcher never treats these as fatal.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable transport failure.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

func transientf(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}
