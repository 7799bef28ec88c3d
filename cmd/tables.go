package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"getsupabase/dbexport"
)

var tablesCount bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables to export",
	Long:  `List the tables to export. With --count each table's exact row count is fetched.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tablesCount {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return dbexport.ListTables(cmd.Context(), nil, dbexport.ResolveTables(cfg.Export.Tables), cmd.OutOrStdout())
		}
		return withClient(cmd, func(ctx context.Context, s *session) error {
			return dbexport.ListTables(ctx, s.client, dbexport.ResolveTables(s.cfg.Export.Tables), s.out)
		})
	},
}

func init() {
	tablesCmd.Flags().BoolVar(&tablesCount, "count", false, "fetch the exact row count of each table")
	rootCmd.AddCommand(tablesCmd)
}
