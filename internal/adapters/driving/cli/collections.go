package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage vector collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vector collections",
	Args:  cobra.NoArgs,
	RunE:  runCollectionsList,
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a vector collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsDelete,
}

func init() {
	collectionsCmd.AddCommand(collectionsListCmd, collectionsDeleteCmd)
	rootCmd.AddCommand(collectionsCmd)
}

func runCollectionsList(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	names, err := ingestService.Collections(context.Background())
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No collections.")
		return nil
	}
	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	return nil
}

func runCollectionsDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if err := ingestService.DeleteCollection(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
