package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tigreau/nto-music/pkg/client"
	"github.com/tigreau/nto-music/pkg/config"
	"github.com/tigreau/nto-music/pkg/logger"
	"github.com/tigreau/nto-music/pkg/notifications"
	"github.com/tigreau/nto-music/pkg/session"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "nto",
	Short: "NTO Music - second-hand instrument marketplace",
	Long: `NTO Music is a command-line storefront for the NTO second-hand
musical instrument marketplace. Browse the catalog, manage your cart,
place orders and follow notifications from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		if err := config.SetString("output.format", outputFmt); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		client.Init()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newCoordinator builds the session coordinator over the REST API and the
// on-disk session cache
func newCoordinator() *session.Coordinator {
	return session.NewRest()
}

// newEngine builds the notification engine over the REST API and the
// event stream
func newEngine() *notifications.Engine {
	return notifications.NewRest()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/nto-music/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}
