package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lacson1/UK-property-management/internal/finance"
	"github.com/lacson1/UK-property-management/internal/services"
)

func taxYearsCmd() *cobra.Command {
	var (
		today string
		count int
	)

	cmd := &cobra.Command{
		Use:   "tax-years",
		Short: "List recent UK tax years, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := todayFlag(today)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TAX YEAR\tSTART\tEND")
			for _, ty := range finance.RecentTaxYears(d, count) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ty.Label(), ty.Start(), ty.End())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "reference date (YYYY-MM-DD), defaults to today in London")
	cmd.Flags().IntVarP(&count, "count", "n", services.RecentTaxYearCount, "number of tax years")
	return cmd
}
