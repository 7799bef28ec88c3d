package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"getsupabase/dbexport"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <table>",
	Short: "List the columns of a table from its first row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		return withClient(cmd, func(ctx context.Context, s *session) error {
			if err := dbexport.ListFields(ctx, s.client, table, s.out); err != nil {
				return withTableHint(err)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
