// Package validation validates records and configuration structs through
// `validate` struct tags (go-playground/validator) and reports failures as
// INVALID_INPUT application errors with per-field details.
package validation
