package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrMissingField = errors.New("missing required field")
	ErrNoFile       = errors.New("no file selected")
	ErrBadFileType  = errors.New("file type not allowed")
	ErrUnsafeName   = errors.New("unsafe stored file name")
	ErrFileExists   = errors.New("stored file already exists")
	ErrTooLarge     = errors.New("upload exceeds size limit")
)

// ValidationKind names the reason an upload was rejected before any I/O.
type ValidationKind string

const (
	MissingField ValidationKind = "MissingField"
	NoFile       ValidationKind = "NoFile"
	BadFileType  ValidationKind = "BadFileType"
	TooLarge     ValidationKind = "TooLarge"
)

type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed (%s) for field '%s': %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
}

// Unwrap exposes the sentinel for the kind so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case MissingField:
		return ErrMissingField
	case NoFile:
		return ErrNoFile
	case BadFileType:
		return ErrBadFileType
	case TooLarge:
		return ErrTooLarge
	}
	return nil
}

func NewValidationError(kind ValidationKind, field, message string) error {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// StorageError is a database failure in the storage layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// FileStoreError is an I/O failure in the upload directory.
type FileStoreError struct {
	Op   string
	Name string
	Err  error
}

func (e *FileStoreError) Error() string {
	return fmt.Sprintf("file store error during %s of %q: %v", e.Op, e.Name, e.Err)
}

func (e *FileStoreError) Unwrap() error {
	return e.Err
}

func NewFileStoreError(op, name string, err error) error {
	return &FileStoreError{Op: op, Name: name, Err: err}
}

// UploadError wraps a storage or file store failure that aborted an upload.
type UploadError struct {
	Stage string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed at %s: %v", e.Stage, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func NewUploadError(stage string, err error) error {
	return &UploadError{Stage: stage, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
