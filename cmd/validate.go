package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report states that fail validation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, failures, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range failures {
			fmt.Fprintf(out, "FAIL %s: %v\n", f.State, f.Err)
		}

		st := cat.Stats()
		fmt.Fprintf(out, "states=%d districts=%d sub_districts=%d villages=%d failed=%d\n",
			st.States, st.Districts, st.SubDistricts, st.Villages, len(failures))

		if len(failures) > 0 {
			return eris.Errorf("validate: %d state(s) failed to load", len(failures))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
