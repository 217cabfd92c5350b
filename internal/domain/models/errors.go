package models

import (
	"errors"
	"fmt"
)

// IdentityResolutionError means the category directory could not be
// listed while resolving a free on-disk name for an upload.
type IdentityResolutionError struct {
	Category string
	Err      error
}

func (e *IdentityResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve identity in category %q: %v", e.Category, e.Err)
}

func (e *IdentityResolutionError) Unwrap() error { return e.Err }

// StorageWriteError means writing or removing image bytes on disk failed.
type StorageWriteError struct {
	Category string
	Identity string
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write failed for %s/%s: %v", e.Category, e.Identity, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// ImageDecodeError means the image bytes could not be decoded. It is
// recoverable: the caller logs it and substitutes a placeholder instead
// of failing the whole request or batch.
type ImageDecodeError struct {
	Err error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image decode failed: %v", e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// PersistenceError means the metadata document could not be written.
// An unreadable document is not an error: the store recovers as empty.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("metadata persistence failed at %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsIdentityResolutionError(err error) bool {
	var target *IdentityResolutionError
	return errors.As(err, &target)
}

func IsStorageWriteError(err error) bool {
	var target *StorageWriteError
	return errors.As(err, &target)
}

func IsImageDecodeError(err error) bool {
	var target *ImageDecodeError
	return errors.As(err, &target)
}

func IsPersistenceError(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}
