package domain

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{"PDF", FormatPDF, false},
		{".pdf", FormatPDF, false},
		{"docx", FormatDocx, false},
		{"doc", FormatDocx, false},
		{"plaintext", FormatPlaintext, false},
		{"txt", FormatPlaintext, false},
		{".txt", FormatPlaintext, false},
		{"text", FormatPlaintext, false},
		{"md", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q): expected ErrUnsupportedFormat, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCollectionName(t *testing.T) {
	if got := CollectionName(PurposeResume, "abc-123"); got != "resume_abc-123" {
		t.Errorf("unexpected collection name %q", got)
	}
	if got := CollectionName(PurposeReference, "abc-123"); got != "reference_abc-123" {
		t.Errorf("unexpected collection name %q", got)
	}
}

func TestChunkID(t *testing.T) {
	if got := ChunkID("resume_s1", 4); got != "resume_s1_chunk_4" {
		t.Errorf("unexpected chunk id %q", got)
	}
}

func TestDefaultEvaluation(t *testing.T) {
	ev := DefaultEvaluation()
	for name, score := range map[string]float64{
		"correctness":  ev.CorrectnessScore,
		"completeness": ev.CompletenessScore,
		"clarity":      ev.ClarityScore,
		"overall":      ev.OverallScore,
	} {
		if score != 5 {
			t.Errorf("%s score = %v, want 5", name, score)
		}
	}
	if ev.Feedback == "" {
		t.Error("default feedback must be non-empty")
	}
	if len(ev.Strengths) != 0 || len(ev.Improvements) != 0 {
		t.Error("default strengths and improvements must be empty")
	}
}
