package errs

import "errors"

// Cross-layer sentinels. Specific errors are Mark-ed with one of these so the
// HTTP layer can pick a status without knowing every use case error.
var (
	ErrDomainValidation = errors.New("domain validation error")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
