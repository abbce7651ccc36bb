package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors returned by the service layer. Controllers map these to
// transport responses; the services themselves never retry or swallow them.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means stock is insufficient for the requested change.
	ErrConflict = errors.New("insufficient stock")

	// ErrInvalidArgument means structurally invalid input reached the
	// service, such as a non-positive quantity or an unknown status token.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ExistsError signals that a create or update hit an entity that already
// holds the natural key. It is not a failure: callers are redirected to the
// existing entity instead of producing a duplicate.
type ExistsError struct {
	ID uuid.UUID
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("entity already exists with id %s", e.ID)
}

// AsExistsError unwraps err into an ExistsError if it is one.
func AsExistsError(err error) (*ExistsError, bool) {
	var existsErr *ExistsError
	if errors.As(err, &existsErr) {
		return existsErr, true
	}
	return nil, false
}
