package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Export a workout to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			w, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = w.Name + ".xlsx"
			}
			if err := export.WriteFile(w, path); err != nil {
				return err
			}
			a.log.Info("workout exported", "name", w.Name, "path", path)

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"name": w.Name, "path": path})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default: NAME.xlsx)")
	return cmd
}
