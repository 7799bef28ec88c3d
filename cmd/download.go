package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <table>",
	Short: "Export a single table",
	Long: `Export a single table with the same pipeline as export. The table does
not need to be in the built-in list. A table that cannot be read is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		return withClient(cmd, func(ctx context.Context, s *session) error {
			return exportTables(ctx, s, []string{table}, true)
		})
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
