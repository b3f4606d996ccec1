package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Refresh errors
	ErrFetchFailed      = errors.New("fetch failed")
	ErrExtractionFailed = errors.New("extraction failed")

	// Query errors
	ErrInvalidCategory  = errors.New("invalid category")
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
