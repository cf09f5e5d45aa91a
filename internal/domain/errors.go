package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateDescription = errors.New("photo with this description already exists")
	ErrNotFound             = errors.New("not found")
)

// ErrorKind classifies a store failure
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindDuplicateDescription
	KindNotFound
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateDescription:
		return "duplicate_description"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Op names the store operation that failed
type Op string

const (
	OpGetGroups         Op = "get groups"
	OpAddGroup          Op = "add group"
	OpDeleteGroup       Op = "delete group"
	OpGetCategories     Op = "get categories"
	OpGetPhotos         Op = "get photos"
	OpGetTotalPhotos    Op = "get total photos"
	OpGetDescription    Op = "get description"
	OpGetPhotoID        Op = "get photo id"
	OpSearchPhotos      Op = "search photos"
	OpAddPhoto          Op = "add photo"
	OpUpdatePhoto       Op = "update photo"
	OpUpdateDescription Op = "update description"
	OpDeletePhoto       Op = "delete photo"
)

// StoreError is returned by every repository operation
type StoreError struct {
	Op   Op
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel that corresponds to the kind
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrDuplicateDescription:
		return e.Kind == KindDuplicateDescription
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// NewStoreError builds a StoreError
func NewStoreError(op Op, kind ErrorKind, err error) *StoreError {
	return &StoreError{Op: op, Kind: kind, Err: err}
}

// KindOf returns the kind carried by err, or KindUnknown
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
