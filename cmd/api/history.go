package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/history"
	"resume-analyzer/internal/shared/storage/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently archived analyses (requires DATABASE_URL)",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", history.DefaultListLimit, "maximum number of entries to print")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	repo := &history.PGRepo{DB: sqlDB}
	entries, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
