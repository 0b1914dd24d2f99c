package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jet1090/internal/app"
)

// newRootCmd builds the cobra command tree, binding flags directly into
// config so it can be constructed and inspected without calling Execute.
func newRootCmd(config *app.Config, showVersion *bool) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jet1090",
		Short: "Mode S/ADS-B decoder",
		Long: `jet1090 decodes Mode S and ADS-B messages from a Beast-framed TCP
feed or a local RTL-SDR dongle, tracks aircraft state, and renders it live
or dumps it as JSON lines.

Example usage:
  jet1090 --host 127.0.0.1 --port 30002 --interactive
  jet1090 --rtlsdr --latlon 48.8566,2.3522 --output frames.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if *showVersion {
				app.ShowVersion()
				return nil
			}

			application := app.NewApplication(*config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVar(&config.Host, "host", "", "Beast-format TCP feed host")
	rootCmd.Flags().IntVar(&config.Port, "port", 30002, "Beast-format TCP feed port")
	rootCmd.Flags().BoolVar(&config.RTLSDR, "rtlsdr", false, "Capture from a local RTL-SDR device instead of TCP")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().StringVarP(&config.Output, "output", "o", "", "Write decoded messages as JSON lines to this path")
	rootCmd.Flags().StringVar(&config.LatLon, "latlon", "", "Reference position as \"lat,lon\" or an ICAO airport code")
	rootCmd.Flags().BoolVarP(&config.Interactive, "interactive", "i", false, "Run the interactive terminal UI")
	rootCmd.Flags().BoolVar(showVersion, "version", false, "Show version information")

	return rootCmd
}

func main() {
	var config app.Config
	var showVersion bool

	if err := newRootCmd(&config, &showVersion).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if app.IsFeatureUnavailable(err) {
			os.Exit(app.ExitFeatureUnavailable)
		}
		os.Exit(1)
	}
}
