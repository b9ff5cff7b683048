package cmd

import (
	"github.com/spf13/cobra"

	"github.com/verbumdei/lectio/internal/service"
)

// newDemoCmd creates the 'demo' subcommand, which prints the bundled
// offline fixture without touching the network.
func newDemoCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the bundled sample readings (offline)",
		RunE: func(*cobra.Command, []string) error {
			return printReadings(service.DemoData(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}
