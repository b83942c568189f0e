package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a datasource is used before its collection is bound
	ErrConfiguration = errors.New("collection name not defined in datasource")

	// ErrNotFound marks an absent update/delete target
	ErrNotFound = errors.New("not found")

	// ErrCollectionTypeMismatch is returned when a collection is requested with a type
	// other than the one it was created with
	ErrCollectionTypeMismatch = errors.New("collection type mismatch")

	// ErrCollectionNotFound is returned for handles on collections missing from the catalog
	ErrCollectionNotFound = errors.New("collection not found")

	ErrInvalidCollectionName = errors.New("invalid collection name")
	ErrInvalidFilter         = errors.New("invalid filter")
	ErrInvalidEdge           = errors.New("edge attribute missing or invalid")
	ErrInvalidID             = errors.New("invalid document identifier")
)

// StorageError wraps an underlying connectivity or query failure
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err, returning nil for a nil err
func NewStorageError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Collection: collection, Err: err}
}

// IsStorageError reports whether err is or wraps a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
