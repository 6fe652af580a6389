// Package errors provides the structured error type shared by the data
// sources, the ranking pipeline and the airport catalog. Every error carries
// a machine-readable code, a human-readable message suitable for display and
// an optional cause.
package errors
