package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driving"
)

type stubIngest struct {
	result *driving.IngestResult
	names  []string
	err    error
}

func (s *stubIngest) Ingest(context.Context, string, domain.Format, domain.Purpose, string) (*driving.IngestResult, error) {
	return s.result, s.err
}

func (s *stubIngest) Collections(context.Context) ([]string, error) { return s.names, s.err }

func (s *stubIngest) DeleteCollection(context.Context, string) error { return s.err }

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		path string
		flag string
		want domain.Format
		ok   bool
	}{
		{"resume.pdf", "", domain.FormatPDF, true},
		{"notes.TXT", "", domain.FormatPlaintext, true},
		{"doc.docx", "", domain.FormatDocx, true},
		{"anything.bin", "pdf", domain.FormatPDF, true},
		{"image.png", "", "", false},
		{"noext", "", "", false},
	}
	for _, tc := range cases {
		got, err := resolveFormat(tc.path, tc.flag)
		if tc.ok {
			require.NoError(t, err, tc.path)
			assert.Equal(t, tc.want, got, tc.path)
		} else {
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, tc.path)
		}
	}
}

func TestIngestCmd_RequiresSession(t *testing.T) {
	original := ingestService
	ingestService = &stubIngest{}
	t.Cleanup(func() { ingestService = original })

	buf := withStub(t, &stubInterview{})
	rootCmd.SetErr(buf)

	rootCmd.SetArgs([]string{"ingest", "resume.pdf", "--session", ""})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--session is required")
}

func TestCollectionsListCmd_PrintsNames(t *testing.T) {
	original := ingestService
	ingestService = &stubIngest{names: []string{"reference_sess-1", "resume_sess-1"}}
	t.Cleanup(func() { ingestService = original })

	buf := withStub(t, &stubInterview{})

	rootCmd.SetArgs([]string{"collections", "list"})
	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "resume_sess-1")
	assert.Contains(t, buf.String(), "reference_sess-1")
}
