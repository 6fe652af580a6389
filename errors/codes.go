package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Data source errors (retryable)
const (
	// ErrCodeSourceFetchFailed indicates a data source could not produce its records.
	ErrCodeSourceFetchFailed ErrorCode = "SOURCE_FETCH_FAILED"
	// ErrCodeTimeout indicates an operation did not complete in time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Lookup and input errors
const (
	// ErrCodeNotFound indicates the requested record was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates a record or config value failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ErrCodeInternal indicates an unexpected failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeSourceFetchFailed: true,
	ErrCodeTimeout:           true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
