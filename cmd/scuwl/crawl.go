package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/petebuffon/scuwl/internal/config"
	"github.com/petebuffon/scuwl/internal/crawler"
	"github.com/petebuffon/scuwl/internal/database"
	"github.com/petebuffon/scuwl/internal/log"
	"github.com/petebuffon/scuwl/internal/model"
	"github.com/petebuffon/scuwl/internal/report"
	"github.com/petebuffon/scuwl/internal/wordlist"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url]...",
		Short: "Crawl a site and generate a wordlist",
		Long: `Crawl fetches pages starting from one or more seed URLs, follows
same-origin links up to the configured depth, and prints a sorted,
deduplicated wordlist built from the visible page text.

Pages are fetched concurrently under a global cap, robots.txt is honored,
and a failed page never aborts the crawl. Interrupting the crawl (Ctrl-C)
exits cleanly without printing a partial wordlist.

Examples:
  # Words from a single page
  scuwl crawl https://example.com

  # Follow links two levels deep, write to a file
  scuwl crawl -d 2 -o wordlist.txt https://example.com

  # Authenticated crawl through an interception proxy
  scuwl crawl -H '{"Cookie":"session=abc123"}' -P http://127.0.0.1:8080 https://example.com

  # Letters only, between 6 and 12 characters
  scuwl crawl -a -m 6 -M 12 https://example.com

  # Table contents only (inventory pages, user listings)
  scuwl crawl -t https://example.com/directory

Configuration file (.scuwl) example:
  sites:
    example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      depth: 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Word filter flags
	cmd.Flags().BoolP("alpha", "a", false,
		"Keep words made of letters only (default keeps any ASCII word)")
	cmd.Flags().IntP("min-length", "m", config.DefaultMinLength,
		"Minimum word length to keep")
	cmd.Flags().IntP("max-length", "M", config.DefaultMaxLength,
		"Maximum word length to keep")
	cmd.Flags().BoolP("punctuation", "p", false,
		"Retain punctuation in words instead of stripping it")
	cmd.Flags().BoolP("tables", "t", false,
		"Extract words from HTML tables only")

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultDepth,
		"Depth of links to follow from the seed (0 = seed page only)")
	cmd.Flags().Int64("concurrency", config.DefaultConcurrency,
		"Maximum number of concurrent page fetches")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of seed URLs crawled concurrently")
	cmd.Flags().DurationP("timeout", "T", config.DefaultTimeout,
		"Timeout for each request")

	// HTTP client flags
	cmd.Flags().StringP("headers", "H", "",
		`Extra request headers as JSON, e.g. '{"Cookie":"session=abc"}'`)
	cmd.Flags().StringP("proxy", "P", "",
		"Proxy address (http://host:port or socks5://host:port)")
	cmd.Flags().StringP("user-agent", "u", "",
		"User-Agent string (default scuwl/<version>)")

	// Output flags
	cmd.Flags().StringP("outfile", "o", "",
		"Write the wordlist to this file instead of stdout")
	cmd.Flags().String("report", "",
		"Write a Markdown crawl summary to this file")

	// Wordlist store flags
	cmd.Flags().Bool("db", false,
		"Save the wordlist to the local store for later export")
	cmd.Flags().String("db-dir", "",
		"Directory of the wordlist store (default XDG data dir)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .scuwl in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging. The secure handler masks cookies and
	// auth headers so verbose runs are safe to share.
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancellation: the first interrupt cancels every crawl task; further
	// interrupts during shutdown are swallowed so the drain can finish.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			cancel()
		}
	}()

	return runCrawl(ctx, cfg)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Seeds = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.AlphaOnly, err = cmd.Flags().GetBool("alpha")
	if err != nil {
		return nil, err
	}

	cfg.MinLength, err = cmd.Flags().GetInt("min-length")
	if err != nil {
		return nil, err
	}

	cfg.MaxLength, err = cmd.Flags().GetInt("max-length")
	if err != nil {
		return nil, err
	}

	retainPunctuation, err := cmd.Flags().GetBool("punctuation")
	if err != nil {
		return nil, err
	}
	cfg.StripPunctuation = !retainPunctuation

	cfg.TablesOnly, err = cmd.Flags().GetBool("tables")
	if err != nil {
		return nil, err
	}

	cfg.Depth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt64("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	headersJSON, err := cmd.Flags().GetString("headers")
	if err != nil {
		return nil, err
	}
	cfg.Headers, err = config.ParseHeaders(headersJSON)
	if err != nil {
		return nil, err
	}

	cfg.Proxy, err = cmd.Flags().GetString("proxy")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "scuwl/" + getVersion()
	}

	cfg.OutFile, err = cmd.Flags().GetString("outfile")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("db")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-site configurations. An explicitly specified file must
	// exist; otherwise a missing file just means no overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	return cfg, nil
}

// runCrawl executes the crawl and writes the outputs.
func runCrawl(ctx context.Context, cfg *config.Config) error {
	// One client and one permit pool for the whole run, so the fetch
	// concurrency cap holds across all seeds.
	client, err := crawler.NewClient(cfg.Proxy, cfg.Timeout)
	if err != nil {
		return err
	}
	permits := semaphore.NewWeighted(cfg.Concurrency)

	words := wordlist.NewSet()
	reports := make([]*model.CrawlReport, len(cfg.Seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchSize)

	for i, seed := range cfg.Seeds {
		g.Go(func() error {
			spider, err := crawler.New(cfg, seed, words,
				crawler.WithClient(client),
				crawler.WithPermits(permits),
			)
			if err != nil {
				return err
			}

			// A cancelled crawl still returns its partial report;
			// the cancellation itself is handled below, once.
			rep, _ := spider.Crawl(gctx)
			reports[i] = rep
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if ctx.Err() != nil {
		// Interrupted: no wordlist, just a clean trailing newline.
		fmt.Println()
		return nil
	}

	if cfg.OutFile != "" {
		if err := words.WriteFile(cfg.OutFile); err != nil {
			return err
		}
	} else {
		if _, err := words.WriteTo(os.Stdout); err != nil {
			return err
		}
	}

	if cfg.SaveToDB {
		if err := saveWordlist(cfg, words); err != nil {
			return err
		}
	}

	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, reports, words.Len()); err != nil {
			return err
		}
	}

	return nil
}

// saveWordlist persists the merged wordlist to the local store.
func saveWordlist(cfg *config.Config, words *wordlist.Set) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open wordlist store: %w", err)
	}
	defer db.Close() //nolint:errcheck

	seed := strings.Join(cfg.Seeds, " ")
	id, err := db.SaveCrawl(context.Background(), seed, words.Sorted())
	if err != nil {
		return fmt.Errorf("failed to save wordlist: %w", err)
	}

	slog.Debug("wordlist saved", "crawl_id", id, "path", db.Path(), "words", words.Len())
	return nil
}

// writeReport writes the Markdown crawl summary.
func writeReport(path string, reports []*model.CrawlReport, totalWords int) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := report.NewMarkdownWriter(f)
	if _, err := w.Write(&report.Run{Reports: reports, TotalWords: totalWords}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
