package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petebuffon/scuwl/internal/config"
	"github.com/petebuffon/scuwl/internal/database"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored wordlist",
		Long: `Export prints the merged wordlist accumulated in the local store by
crawls run with --db. Words from all stored crawls are deduplicated and
sorted.

Examples:
  # Print the merged wordlist
  scuwl export

  # Write it to a file
  scuwl export -o merged.txt

  # Only words from crawls of one seed
  scuwl export --seed https://example.com

  # List stored crawls instead of words
  scuwl export --list`,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("outfile", "o", "",
		"Write the wordlist to this file instead of stdout")
	cmd.Flags().String("seed", "",
		"Export only words from crawls of this seed URL")
	cmd.Flags().Bool("list", false,
		"List stored crawls instead of exporting words")
	cmd.Flags().String("db-dir", "",
		"Directory of the wordlist store (default XDG data dir)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Never create an empty store on export.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listCrawls(cmd, db)
	}

	seed, err := cmd.Flags().GetString("seed")
	if err != nil {
		return err
	}

	var words []string
	if seed != "" {
		words, err = db.SeedWords(cmd.Context(), seed)
	} else {
		words, err = db.Words(cmd.Context())
	}
	if err != nil {
		return err
	}

	outfile, err := cmd.Flags().GetString("outfile")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outfile != "" {
		f, err := os.Create(outfile) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create wordlist file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	bw := bufio.NewWriter(out)
	for _, word := range words {
		if _, err := fmt.Fprintln(bw, word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// listCrawls prints the stored crawl records, newest first.
func listCrawls(cmd *cobra.Command, db *database.WordlistDB) error {
	crawls, err := db.Crawls(cmd.Context())
	if err != nil {
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no stored crawls")
		return nil
	}

	for _, c := range crawls {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d words\n",
			c.ID, c.Timestamp.Format("2006-01-02 15:04:05"), c.Seed, c.WordCount)
	}
	return nil
}
