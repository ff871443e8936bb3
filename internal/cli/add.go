package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		exercise    string
		sets, reps  int
		weight      float64
		muscleGroup string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Append an exercise to a workout",
		Long: `Append an exercise to the named workout, creating the workout if it
does not exist yet.

Example:
  liftlog add "Push Day" --exercise Bench --sets 4 --reps 8 --weight 135 --muscle-group Push`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			e := models.NewExercise(exercise, sets, reps, weight, muscleGroup)
			if err := e.Validate(); err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			w, err := store.Load(cmd.Context(), name)
			if errors.Is(err, storage.ErrNotFound) {
				if err := models.ValidateWorkoutName(name); err != nil {
					return err
				}
				w, err = models.NewWorkout(name), nil
			}
			if err != nil {
				return err
			}

			w.AddExercise(e)
			if err := store.Save(cmd.Context(), w); err != nil {
				return err
			}
			a.log.Info("exercise added", "workout", name, "exercise", e.Name, "volume", e.Volume())
			return a.printWorkout(cmd.OutOrStdout(), w)
		},
	}

	cmd.Flags().StringVar(&exercise, "exercise", "", "exercise name")
	cmd.Flags().IntVar(&sets, "sets", 0, "number of sets")
	cmd.Flags().IntVar(&reps, "reps", 0, "repetitions per set")
	cmd.Flags().Float64Var(&weight, "weight", 0, "load per repetition; pass 0 for bodyweight")
	cmd.Flags().StringVar(&muscleGroup, "muscle-group", "", "muscle group, e.g. Push, Back, Quads")
	cmd.MarkFlagRequired("exercise")
	cmd.MarkFlagRequired("sets")
	cmd.MarkFlagRequired("reps")
	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("muscle-group")
	return cmd
}
