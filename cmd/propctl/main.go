// Command propctl is an operator tool for the property management API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lacson1/UK-property-management/internal/models"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "propctl",
		Short:         "Property management command line tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		exportCmd(),
		taxYearsCmd(),
		complianceCmd(),
	)
	return root
}

// todayFlag resolves a --today value, defaulting to the date in London.
func todayFlag(value string) (models.Date, error) {
	if value == "" {
		loc, err := time.LoadLocation("Europe/London")
		if err != nil {
			loc = time.UTC
		}
		return models.DateOf(time.Now().In(loc)), nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid --today %q: %w", value, err)
	}
	return d, nil
}
