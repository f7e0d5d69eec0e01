package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigreer/hostprobe/internal/config"
	"github.com/sigreer/hostprobe/internal/db"
	"github.com/sigreer/hostprobe/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved inventory snapshots",
	Long: `Snapshots are written by 'hostprobe --save' or when history.enabled is
set in the config file. They live in the SQLite database at history.path.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		database := openHistory(loadConfig())

		err := listSnapshots(cmd.Context(), os.Stdout, database, limit)
		database.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
			os.Exit(1)
		}
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved inventory document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		pretty, indent, err := outputOptions(cmd.Flags(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		database := openHistory(cfg)
		err = showSnapshot(cmd.Context(), os.Stdout, database, args[0], pretty, indent)
		database.Close()
		if errors.Is(err, errSnapshotNotFound) {
			fmt.Fprintf(os.Stderr, "Not found: %s\n", args[0])
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error showing snapshot: %v\n", err)
			os.Exit(1)
		}
	},
}

var errSnapshotNotFound = errors.New("snapshot not found")

func listSnapshots(ctx context.Context, w io.Writer, database *db.DB, limit int) error {
	snapshots, err := database.ListSnapshots(ctx, limit)
	if err != nil {
		return err
	}
	output.PrintSnapshots(w, snapshots)
	return nil
}

func showSnapshot(ctx context.Context, w io.Writer, database *db.DB, id string, pretty bool, indent int) error {
	snapshot, err := database.GetSnapshot(ctx, id)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return errSnapshotNotFound
	}
	return output.WriteJSON(w, snapshot.Document, pretty, indent)
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", db.DefaultListLimit, "maximum number of snapshots to list")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}

func openHistory(cfg *config.Config) *db.DB {
	database, err := db.New(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	return database
}
