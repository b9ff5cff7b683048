// Package cmd defines and implements the CLI commands for the lectio executable.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verbumdei/lectio/internal/datekey"
	"github.com/verbumdei/lectio/internal/liturgy"
)

// newGetCmd creates the 'get' subcommand, which fetches and prints
// the readings for one date.
func newGetCmd() *cobra.Command {
	var (
		asJSON bool
		offset int
	)

	cmd := &cobra.Command{
		Use:   "get [date]",
		Short: "Fetch the readings for a date",
		Long: `Fetches and prints the readings for a date given as an MMDDYY key
or an ISO date (YYYY-MM-DD). With no argument the current date is
used; --offset shifts it by whole days.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			svc := appInstance.Readings()
			ctx := cmd.Context()

			var readings liturgy.DailyReadings
			switch {
			case len(args) == 1:
				key, err := normalizeDateArg(args[0])
				if err != nil {
					return err
				}
				readings, err = svc.GetReadings(ctx, key)
				if err != nil {
					return err
				}
			case offset != 0:
				readings, err = svc.ByOffset(ctx, offset)
				if err != nil {
					return err
				}
			default:
				readings, err = svc.Today(ctx)
				if err != nil {
					return err
				}
			}

			return printReadings(readings, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	cmd.Flags().IntVar(&offset, "offset", 0, "day offset from today (ignored when a date is given)")
	return cmd
}

// normalizeDateArg accepts either an encoded MMDDYY key or an ISO
// date and returns the encoded key.
func normalizeDateArg(arg string) (string, error) {
	if t, err := time.ParseInLocation("2006-01-02", arg, time.Local); err == nil {
		return datekey.Encode(t), nil
	}
	if _, err := datekey.Decode(arg); err != nil {
		return "", fmt.Errorf("%q is neither an MMDDYY key nor an ISO date: %w", arg, err)
	}
	return arg, nil
}

// printReadings writes the record to stdout.
func printReadings(readings liturgy.DailyReadings, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(readings)
	}

	fmt.Printf("%s\n", readings.DisplayDate)
	if readings.Title != "" {
		fmt.Printf("%s\n", readings.Title)
	}
	fmt.Printf("Season: %s  Rank: %s", readings.Season, readings.Rank)
	if readings.Lectionary != "" {
		fmt.Printf("  Lectionary: %s", readings.Lectionary)
	}
	fmt.Println()

	for _, r := range readings.Readings {
		fmt.Printf("\n%s", r.Name)
		if r.Reference != "" {
			fmt.Printf(" (%s)", r.Reference)
		}
		fmt.Println()
		fmt.Println(strings.Repeat("-", 40))
		fmt.Println(r.Text)
	}
	return nil
}
