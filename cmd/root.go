package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verbumdei/lectio/internal/app"
	"github.com/verbumdei/lectio/internal/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// newApp is the application factory. It's a variable so tests can
// replace it with a mock factory.
var newApp = func(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lectio",
		Short: "Fetch and parse daily Catholic liturgical readings.",
		Long: `lectio retrieves the daily readings page from the USCCB site and
extracts it into a structured record: liturgical title, season, rank,
lectionary number, and the individual readings with their citations.`,

		// Build and inject the application after flags are parsed but
		// before any subcommand runs.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Shut services down gracefully.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(*app.App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults plus LECTIO_* env)")

	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDemoCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveApp(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}
