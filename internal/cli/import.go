package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/ingest/alpha"
)

func newImportCmd(a *app) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Import workouts from an Alpha Progression CSV export",
		Long: `Import workouts from an Alpha Progression CSV export.

Each session in the export becomes one workout named after the session.
Warm-up sets are skipped and consecutive identical working sets collapse
into a single exercise. Workouts that already exist are skipped unless
--overwrite is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening export: %w", err)
			}
			defer f.Close()

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			result, err := alpha.NewProvider(store, a.log).Ingest(cmd.Context(), f, overwrite)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			a.log.Info("import stats",
				"sessions", result.SessionsReceived,
				"sets", result.SetsReceived,
				"warmups_skipped", result.WarmupsSkipped,
				"sets_rejected", result.SetsRejected,
				"exercises_saved", result.ExercisesSaved,
			)

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, result)
			}
			fmt.Fprintf(out, "Imported %d of %d sessions (%d exercises).\n",
				len(result.WorkoutsSaved), result.SessionsReceived, result.ExercisesSaved)
			if len(result.WorkoutsSaved) > 0 {
				fmt.Fprintf(out, "Saved: %s\n", strings.Join(result.WorkoutsSaved, ", "))
			}
			if len(result.WorkoutsSkipped) > 0 {
				fmt.Fprintf(out, "Skipped (already stored, use --overwrite): %s\n", strings.Join(result.WorkoutsSkipped, ", "))
			}
			if result.SetsRejected > 0 {
				fmt.Fprintf(out, "Rejected %d invalid sets.\n", result.SetsRejected)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace workouts that already exist")
	return cmd
}
