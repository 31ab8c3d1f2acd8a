package domain

import "fmt"

// Purpose identifies a document's role within an interview session.
// Each purpose maps to its own vector collection.
type Purpose string

// Document purposes.
const (
	// PurposeResume is the candidate's resume.
	PurposeResume Purpose = "resume"

	// PurposeReference is supporting reference material (job specs,
	// topic guides, sample questions).
	PurposeReference Purpose = "reference"
)

// ParsePurpose converts a user-supplied purpose string into a Purpose.
func ParsePurpose(s string) (Purpose, error) {
	switch s {
	case string(PurposeResume):
		return PurposeResume, nil
	case string(PurposeReference):
		return PurposeReference, nil
	default:
		return "", fmt.Errorf("%w: purpose %q", ErrInvalidInput, s)
	}
}

// CollectionName returns the vector collection name for a purpose and
// session, following the "{purpose}_{session_id}" convention.
func CollectionName(purpose Purpose, sessionID string) string {
	return fmt.Sprintf("%s_%s", purpose, sessionID)
}

// ChunkID returns the storage identifier for chunk index i of a
// collection. Re-ingesting a document reproduces the same identifiers,
// which makes ingestion idempotent under upsert semantics.
func ChunkID(collection string, i int) string {
	return fmt.Sprintf("%s_chunk_%d", collection, i)
}

// Sentinel context strings returned when retrieval cannot produce real
// context. Generation proceeds with these rather than failing, since a
// stalled interview is worse than a mediocre one.
const (
	// NoContextFound is returned for a collection with no stored chunks.
	NoContextFound = "No relevant context found."

	// ContextUnavailable is substituted when retrieval fails outright.
	ContextUnavailable = "Error retrieving context."
)
