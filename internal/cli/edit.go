package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/models"
)

const editFields = "name, sets, reps, weight, muscle-group"

func newEditCmd(a *app) *cobra.Command {
	var field, value string

	cmd := &cobra.Command{
		Use:   "edit NAME INDEX",
		Short: "Change one field of an exercise",
		Long: `Change one field of the exercise at INDEX in the named workout.
INDEX is 1-based, as printed by "liftlog show".

Editable fields: ` + editFields + `.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return &models.ValidationError{Field: "index", Reason: fmt.Sprintf("%q is not a number", args[1])}
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			w, err := store.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			if idx < 1 || idx > w.Size() {
				return &models.ValidationError{Field: "index", Reason: fmt.Sprintf("must be between 1 and %d", w.Size())}
			}

			if err := applyEdit(w, idx-1, field, value); err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), w); err != nil {
				return err
			}
			a.log.Info("exercise edited", "workout", name, "index", idx, "field", field)
			return a.printWorkout(cmd.OutOrStdout(), w)
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "field to change: "+editFields)
	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.MarkFlagRequired("field")
	cmd.MarkFlagRequired("value")
	return cmd
}

// applyEdit parses value for field and applies it to exercise i.
func applyEdit(w *models.Workout, i int, field, value string) error {
	switch field {
	case "name":
		return w.SetExerciseName(i, value)
	case "sets", "reps":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a whole number", value)}
		}
		if field == "sets" {
			return w.SetExerciseSets(i, n)
		}
		return w.SetExerciseReps(i, n)
	case "weight":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a number", value)}
		}
		return w.SetExerciseWeight(i, f)
	case "muscle-group":
		return w.SetExerciseMuscleGroup(i, value)
	default:
		return &models.ValidationError{Field: "field", Reason: fmt.Sprintf("%q is not one of %s", field, editFields)}
	}
}
