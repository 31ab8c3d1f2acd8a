package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a declared document format outside
	// the supported set (pdf, docx, plaintext).
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction indicates a document could not be read or no
	// extraction strategy produced text.
	ErrExtraction = errors.New("document extraction failed")

	// ErrInvalidChunking indicates an invalid chunk size/overlap
	// configuration (overlap must be smaller than the window size).
	ErrInvalidChunking = errors.New("invalid chunk configuration")

	// ErrNetwork indicates an external service (model server or vector
	// index) was unreachable, timed out, or returned a non-success
	// status. No automatic retry is performed.
	ErrNetwork = errors.New("network failure")

	// ErrParse indicates a model response did not match the expected
	// structured-output schema. Callers recover from this locally with
	// a default record rather than propagating it.
	ErrParse = errors.New("malformed model response")

	// ErrDimensionMismatch indicates an embedding whose dimensionality
	// differs from the one established by a collection's first write.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrDocumentTooLarge indicates an upload exceeding the configured
	// size limit.
	ErrDocumentTooLarge = errors.New("document exceeds size limit")
)
