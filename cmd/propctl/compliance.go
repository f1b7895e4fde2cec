package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lacson1/UK-property-management/internal/compliance"
	"github.com/lacson1/UK-property-management/internal/models"
)

func complianceCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "compliance <expiry YYYY-MM-DD>",
		Short: "Show the compliance status of an expiry date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expiry, err := models.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid expiry %q: %w", args[0], err)
			}
			d, err := todayFlag(today)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VIEW\tSTATUS\tDAYS LEFT\tCOLOUR")
			printResult(w, "document", compliance.DocumentStatus(&expiry, d))
			printResult(w, "dashboard", compliance.DashboardStatus(&expiry, d))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "reference date (YYYY-MM-DD), defaults to today in London")
	return cmd
}

func printResult(w *tabwriter.Writer, view string, r compliance.Result) {
	days := "-"
	if r.DaysLeft != nil {
		days = fmt.Sprint(*r.DaysLeft)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", view, r.Status, days, r.Color)
}
