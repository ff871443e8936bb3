package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/analytics"
	"github.com/akyro/liftlog/internal/models"
)

// workoutOutput is the JSON shape of show, create, add and edit.
type workoutOutput struct {
	Workout *models.Workout   `json:"workout"`
	Summary analytics.Summary `json:"summary"`
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a workout's exercises and totals",
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
			return a.printWorkout(cmd.OutOrStdout(), w)
		},
	}
}

func (a *app) printWorkout(out io.Writer, w *models.Workout) error {
	sum := analytics.Summarize(w)
	if a.jsonOutput() {
		return writeJSON(out, workoutOutput{Workout: w, Summary: sum})
	}

	fmt.Fprintln(out, w.Name)
	if w.Size() == 0 {
		fmt.Fprintln(out, "  (no exercises)")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tEXERCISE\tSETS\tREPS\tWEIGHT\tMUSCLE GROUP\tVOLUME")
	for i, e := range w.Exercises {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
			i+1, e.Name, e.Sets, e.Reps, number(e.Weight), e.MuscleGroup, number(e.Volume()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Total: %d exercises, %d sets, %d reps, volume %s\n",
		sum.Exercises, sum.TotalSets, sum.TotalReps, number(sum.TotalVolume))
	if sum.Highest != nil {
		fmt.Fprintf(out, "Highest volume: %s (%s)\n", sum.Highest.Name, number(sum.Highest.Volume()))
	}
	return nil
}

// number formats a weight or volume without trailing zeros.
func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
