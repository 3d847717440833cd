package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotARepository is returned when no metadata directory is found.
	ErrNotARepository = errors.New("not a nexus repository")

	// ErrMissingConfig is returned when the config file is absent or unreadable.
	ErrMissingConfig = errors.New("configuration file missing")

	// ErrUnsupportedFormatVersion is returned for any core.repositoryformatversion other than 0.
	ErrUnsupportedFormatVersion = errors.New("unsupported repositoryformatversion")

	// ErrNotADirectory is returned when a path expected to be a directory is something else.
	ErrNotADirectory = errors.New("not a directory")

	// ErrAlreadyInitialized is returned by Create when the metadata directory is not empty.
	ErrAlreadyInitialized = errors.New("repository already initialized")
)

// NotADirectoryError indicates Path exists but is not a directory
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

func (e *NotADirectoryError) Is(target error) bool {
	return target == ErrNotADirectory
}

// AlreadyInitializedError indicates a non-empty metadata directory at Path
type AlreadyInitializedError struct {
	Path string
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("repository already initialized: %s is not empty", e.Path)
}

func (e *AlreadyInitializedError) Is(target error) bool {
	return target == ErrAlreadyInitialized
}

// MissingConfigError wraps the failure to read or parse the config at Path
type MissingConfigError struct {
	Path string
	Err  error
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("configuration file missing or invalid: %s: %v", e.Path, e.Err)
}

func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

func (e *MissingConfigError) Unwrap() error {
	return e.Err
}

// FormatVersionError carries the rejected core.repositoryformatversion value.
// Version is empty when the key is absent.
type FormatVersionError struct {
	Version string
}

func (e *FormatVersionError) Error() string {
	if e.Version == "" {
		return "unsupported repositoryformatversion: not set"
	}

	return fmt.Sprintf("unsupported repositoryformatversion: %s", e.Version)
}

func (e *FormatVersionError) Is(target error) bool {
	return target == ErrUnsupportedFormatVersion
}
