// Command prospectrank runs the prospect evaluation and ranking service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prospectrank",
		Short: "Evaluate, rank and track basketball draft prospects",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $PROSPECTRANK_CONFIG)")

	root.AddCommand(serveCmd())
	root.AddCommand(boardCmd())
	root.AddCommand(trendingCmd())

	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server with periodic board refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func boardCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Evaluate the stored prospect pool and print the ranked board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(limit, jsonOutput)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 30, "max board entries to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func trendingCmd() *cobra.Command {
	var (
		window string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show the top rising and falling prospects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrending(window, limit)
		},
	}

	cmd.Flags().StringVar(&window, "window", "7d", "trend window (e.g. 7d, 24h)")
	cmd.Flags().IntVar(&limit, "limit", 3, "max movers per direction")
	return cmd
}
