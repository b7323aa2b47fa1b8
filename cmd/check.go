package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtual-embodiment-lab/obe-new/views"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.csv>...",
		Short: "Validate movement logs against the row and header rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bad := 0

			for _, path := range args {
				report, err := views.CheckLog(path)
				if err != nil {
					return err
				}

				if report.OK() {
					fmt.Fprintf(out, "%s: ok, %d rows, %.2fs..%.2fs\n",
						path, report.Rows, report.FirstTime, report.LastTime)
					continue
				}

				bad++
				fmt.Fprintf(out, "%s: %d problems in %d rows\n", path, len(report.Problems), report.Rows)
				for _, p := range report.Problems {
					fmt.Fprintf(out, "  line %d: %s\n", p.Line, p.Reason)
				}
			}

			if bad > 0 {
				return fmt.Errorf("%d of %d logs failed validation", bad, len(args))
			}
			return nil
		},
	}
}
