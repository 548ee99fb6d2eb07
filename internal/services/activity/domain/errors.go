package domain

import (
	"fmt"

	perr "github.com/baking-bad/tzkt-sub003/internal/platform/errors"
)

// StorageError is a sub-query failure tagged with the failing kind
type StorageError struct {
	Kind string
	Err  error
}

// NewStorageError wraps err for kind, mapping it onto a perr code; nil stays nil
func NewStorageError(kind string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Kind: kind, Err: perr.FromStorage(err, "query "+kind)}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("activity: kind %s: %v", e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Code is the perr code of the underlying failure
func (e *StorageError) Code() perr.ErrorCode { return perr.CodeOf(e.Err) }

// Retryable reports whether an outer layer may retry the request; the aggregator never does
func (e *StorageError) Retryable() bool { return perr.IsRetryable(e.Err) }
