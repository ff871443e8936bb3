package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listOutput is the JSON shape of the list command.
type listOutput struct {
	Workouts []string `json:"workouts"`
	Count    int      `json:"count"`
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List stored workouts",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, listOutput{Workouts: names, Count: len(names)})
			}
			if len(names) == 0 {
				fmt.Fprintln(out, "No workouts stored.")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
}
