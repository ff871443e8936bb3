package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/analytics"
	"github.com/akyro/liftlog/internal/models"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "analyze NAME",
		Short: "Show volume breakdown, top and bottom exercises, and the push/pull/legs split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return &models.ValidationError{Field: "top", Reason: "must not be negative"}
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			w, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report := analytics.Analyze(w, top)
			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, report)
			}
			return printReport(out, report)
		},
	}

	cmd.Flags().IntVar(&top, "top", 3, "number of exercises in the top and bottom lists")
	return cmd
}

func printReport(out io.Writer, r analytics.Report) error {
	fmt.Fprintf(out, "%s: total volume %s\n", r.Name, number(r.TotalVolume))
	if r.TotalVolume == 0 {
		fmt.Fprintln(out, "No volume recorded; shares are undefined.")
	}

	if len(r.Breakdown) > 0 {
		fmt.Fprintln(out, "\nVolume breakdown:")
		if err := printShares(out, r.Breakdown); err != nil {
			return err
		}
	}
	if len(r.Top) > 0 {
		fmt.Fprintf(out, "\nTop %d:\n", len(r.Top))
		if err := printShares(out, r.Top); err != nil {
			return err
		}
	}
	if len(r.Bottom) > 0 {
		fmt.Fprintf(out, "\nBottom %d:\n", len(r.Bottom))
		if err := printShares(out, r.Bottom); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nSplit:")
	fmt.Fprintf(out, "  Push  %s\n", percent(r.Split.Push))
	fmt.Fprintf(out, "  Pull  %s\n", percent(r.Split.Pull))
	fmt.Fprintf(out, "  Legs  %s\n", percent(r.Split.Legs))

	if r.Highest != nil {
		fmt.Fprintf(out, "\nHighest volume: %s (%s)\n", r.Highest.Name, number(r.Highest.Volume()))
	}
	return nil
}

func printShares(out io.Writer, shares []analytics.Share) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range shares {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", s.Index+1, s.Exercise.Name, number(s.Volume), percent(s.Fraction))
	}
	return tw.Flush()
}
