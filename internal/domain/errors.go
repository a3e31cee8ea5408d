package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. unknown dedupe mode, export path escaping the exports directory).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrBadUpload is returned for batch-level fatal problems with an uploaded
// file: unreadable content, an unreadable workbook, or a missing header row.
// The whole import aborts before any row is processed; no partial writes occur.
// Handlers should map this to HTTP 400.
var ErrBadUpload = errors.New("unreadable upload")
