package domain

import (
	"fmt"
	"strings"
)

// Format identifies the declared format of an uploaded document.
type Format string

// Supported document formats.
const (
	// FormatPDF is a PDF document.
	FormatPDF Format = "pdf"

	// FormatDocx is a Word (OOXML) document.
	FormatDocx Format = "docx"

	// FormatPlaintext is a plain text document.
	FormatPlaintext Format = "plaintext"
)

// ParseFormat converts a user-supplied format string (or a file
// extension) into a Format. It accepts common aliases such as "txt"
// and "doc".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdf":
		return FormatPDF, nil
	case "docx", "doc":
		return FormatDocx, nil
	case "plaintext", "txt", "text":
		return FormatPlaintext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}
