package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/analytics"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare A B",
		Short: "Compare the volume and exercises of two workouts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			wa, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			wb, err := store.Load(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			c := analytics.Compare(wa, wb)
			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, c)
			}

			fmt.Fprintf(out, "%s: volume %s\n", c.NameA, number(c.VolumeA))
			fmt.Fprintf(out, "%s: volume %s\n", c.NameB, number(c.VolumeB))

			diff := number(c.VolumeDifference)
			if pct, ok := c.VolumeDifferencePercent(); ok {
				diff += " (" + percent(pct) + ")"
			} else {
				diff += " (percentage undefined: one workout has no volume)"
			}
			fmt.Fprintf(out, "Difference: %s\n", diff)

			switch c.Larger() {
			case analytics.SideA:
				fmt.Fprintf(out, "Larger: %s\n", c.NameA)
			case analytics.SideB:
				fmt.Fprintf(out, "Larger: %s\n", c.NameB)
			default:
				fmt.Fprintln(out, "Larger: neither, volumes are equal")
			}

			fmt.Fprintf(out, "Common: %s\n", joinNames(c.CommonExercises))
			fmt.Fprintf(out, "Only in %s: %s\n", c.NameA, joinNames(c.UniqueToA))
			fmt.Fprintf(out, "Only in %s: %s\n", c.NameB, joinNames(c.UniqueToB))
			return nil
		},
	}
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
