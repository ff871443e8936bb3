package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/storage"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Short:   "Delete a stored workout",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			deleted := true
			if err := store.Delete(cmd.Context(), name); err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					return err
				}
				deleted = false
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, map[string]any{"name": name, "deleted": deleted})
			}
			if !deleted {
				fmt.Fprintf(out, "Workout %q not found.\n", name)
				return nil
			}
			a.log.Info("workout deleted", "name", name)
			fmt.Fprintf(out, "Deleted %q.\n", name)
			return nil
		},
	}
}
