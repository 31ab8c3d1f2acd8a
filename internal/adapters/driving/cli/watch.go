package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/watcher"
)

var (
	watchSession string
	watchPurpose string
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest dropped documents",
	Long: `Watches the directory for new or changed pdf, docx and txt files
and ingests each one into the session's collection once it settles.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSession, "session", "s", "", "session ID (required)")
	watchCmd.Flags().StringVarP(&watchPurpose, "purpose", "p", "reference", "document purpose (resume or reference)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if watchSession == "" {
		return errors.New("--session is required")
	}
	purpose, err := domain.ParsePurpose(watchPurpose)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(dir, []string{"pdf", "docx", "txt"}, func(path string) {
		format, err := resolveFormat(path, "")
		if err != nil {
			cliLogger.Warn("skipping file", zap.String("path", path), zap.Error(err))
			return
		}
		result, err := ingestService.Ingest(ctx, path, format, purpose, watchSession)
		if err != nil {
			cliLogger.Error("ingest failed", zap.String("path", path), zap.Error(err))
			return
		}
		cmd.Printf("Ingested %s (%d chunks)\n", path, result.ChunkCount)
	}, cliLogger)

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	cmd.Printf("Watching %s, press Ctrl-C to stop\n", dir)
	<-ctx.Done()
	return nil
}
