package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jrsteele09/diplomats-site/internal/buildinfo"
	"github.com/spf13/cobra"
)

const appName = "diplomats-site"

func main() {
	rootCmd := &cobra.Command{
		Use:          "server",
		Short:        "Engineering Diplomats website",
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(buildinfo.Get(appName))
		},
	}
}
