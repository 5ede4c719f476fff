package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geodir/internal/query"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every level of the catalog and print matches as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		res, err := query.NewService(cat).Search(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(res), "search: encode result")
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
