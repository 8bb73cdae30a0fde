package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JanKosminski/DuplicateCrawler/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date

	rootCmd := &cobra.Command{
		Use:   "dupcrawler",
		Short: "Duplicate document detection utility",
		Long: `dupcrawler scans directory trees for duplicate and near-duplicate documents.
Text-bearing files are compared by their extracted content, so the same prose
stored as .txt, .pdf or .docx is still detected; everything else is compared
by raw bytes. Near-duplicates are found with TF-IDF cosine similarity.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewScanCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
