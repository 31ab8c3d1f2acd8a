package domain

import "time"

// Document represents an uploaded reference document moving through the
// ingestion pipeline. Content is the full extracted text; documents are
// transient and not persisted beyond the vector index entries derived
// from their chunks.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Path is the filesystem location the document was read from.
	Path string

	// Format is the declared document format.
	Format Format

	// Purpose is the document's role in the interview (resume or
	// reference material).
	Purpose Purpose

	// SessionID is the interview session this document belongs to.
	SessionID string

	// Content is the full text after extraction and cleaning.
	Content string

	// Metadata contains arbitrary key-value pairs carried into every
	// chunk derived from this document.
	Metadata map[string]any

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a bounded, ordered, overlapping window of a document's
// cleaned text. Ordering is significant: Index is 0-based and monotonic,
// and is preserved into storage identifiers of the form
// "{collection}_chunk_{index}".
type Chunk struct {
	// Text is the window content.
	Text string

	// Index is the ordinal position within the document.
	Index int

	// Total is the number of chunks produced from the document.
	Total int

	// Metadata contains chunk-specific key-value pairs, including the
	// parent document's metadata.
	Metadata map[string]any
}

// ResumeProfile holds the lightweight keyword scan of a resume produced
// at ingest time. It is advisory output for the caller, not an input to
// retrieval.
type ResumeProfile struct {
	Skills     []string
	Experience []string
	Education  []string
	Summary    string
}
