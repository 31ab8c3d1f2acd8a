package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

var (
	ingestPurpose string
	ingestFormat  string
	ingestSession string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into a session's knowledge base",
	Long: `Extracts text from the document, chunks it, embeds the chunks and
stores them in the session's vector collection. Resumes additionally
get a keyword profile scan.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestPurpose, "purpose", "p", "reference", "document purpose (resume or reference)")
	ingestCmd.Flags().StringVarP(&ingestFormat, "format", "f", "", "document format (pdf, docx, txt); inferred from extension if omitted")
	ingestCmd.Flags().StringVarP(&ingestSession, "session", "s", "", "session ID (required)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestSession == "" {
		return errors.New("--session is required")
	}

	purpose, err := domain.ParsePurpose(ingestPurpose)
	if err != nil {
		return err
	}
	format, err := resolveFormat(path, ingestFormat)
	if err != nil {
		return err
	}

	result, err := ingestService.Ingest(context.Background(), path, format, purpose, ingestSession)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s into %s (%d chunks)\n", filepath.Base(path), result.Collection, result.ChunkCount)
	if result.Profile != nil {
		printProfile(cmd, result.Profile)
	}
	return nil
}

func resolveFormat(path, flag string) (domain.Format, error) {
	if flag != "" {
		return domain.ParseFormat(flag)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: no extension on %q, pass --format", domain.ErrUnsupportedFormat, path)
	}
	return domain.ParseFormat(ext)
}

func printProfile(cmd *cobra.Command, profile *domain.ResumeProfile) {
	if len(profile.Skills) > 0 {
		cmd.Printf("Skills: %s\n", strings.Join(profile.Skills, ", "))
	}
	if len(profile.Experience) > 0 {
		cmd.Printf("Experience entries: %d\n", len(profile.Experience))
	}
	if len(profile.Education) > 0 {
		cmd.Printf("Education entries: %d\n", len(profile.Education))
	}
	if profile.Summary != "" {
		cmd.Printf("Summary: %s\n", profile.Summary)
	}
}
