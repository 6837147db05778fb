package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/petebuffon/scuwl/internal/config"
	"github.com/petebuffon/scuwl/internal/database"
)

// parseCrawlFlags returns a crawl command with the given flags parsed,
// ready for buildConfig.
func parseCrawlFlags(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()

	cmd := NewCrawlCmd()
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatalf("failed to parse flags %v: %v", flags, err)
	}
	return cmd
}

func TestBuildConfigDefaults(t *testing.T) {
	t.Parallel()

	cmd := parseCrawlFlags(t)
	cfg, err := buildConfig(cmd, []string{"https://example.com/"})
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	if !reflect.DeepEqual(cfg.Seeds, []string{"https://example.com/"}) {
		t.Errorf("expected seeds from args, got %v", cfg.Seeds)
	}
	if cfg.Depth != config.DefaultDepth {
		t.Errorf("expected default depth, got %d", cfg.Depth)
	}
	if !cfg.StripPunctuation {
		t.Error("expected punctuation stripping by default")
	}
	if cfg.AlphaOnly {
		t.Error("expected alpha mode off by default")
	}
	if !strings.HasPrefix(cfg.UserAgent, "scuwl/") {
		t.Errorf("expected default user agent, got %q", cfg.UserAgent)
	}
	if cfg.SiteConfigs == nil {
		t.Error("expected non-nil site configs")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid default config, got %v", err)
	}
}

func TestBuildConfigFlags(t *testing.T) {
	t.Parallel()

	cmd := parseCrawlFlags(t,
		"-a", "-p", "-t",
		"-m", "5", "-M", "12",
		"-d", "2", "-b", "2",
		"--concurrency", "10",
		"-T", "5s",
		"-H", `{"Cookie":"session=abc"}`,
		"-P", "socks5://127.0.0.1:9050",
		"-u", "custom-agent/1.0",
		"-o", "out.txt",
		"--report", "report.md",
		"--db", "--db-dir", "/tmp/store",
	)

	cfg, err := buildConfig(cmd, []string{"https://example.com/"})
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	if !cfg.AlphaOnly {
		t.Error("expected alpha mode on")
	}
	if cfg.StripPunctuation {
		t.Error("expected -p to retain punctuation")
	}
	if !cfg.TablesOnly {
		t.Error("expected tables mode on")
	}
	if cfg.MinLength != 5 || cfg.MaxLength != 12 {
		t.Errorf("expected length range [5, 12], got [%d, %d]", cfg.MinLength, cfg.MaxLength)
	}
	if cfg.Depth != 2 {
		t.Errorf("expected depth 2, got %d", cfg.Depth)
	}
	if cfg.BatchSize != 2 {
		t.Errorf("expected batch size 2, got %d", cfg.BatchSize)
	}
	if cfg.Concurrency != 10 {
		t.Errorf("expected concurrency 10, got %d", cfg.Concurrency)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.Headers["Cookie"] != "session=abc" {
		t.Errorf("expected cookie header, got %v", cfg.Headers)
	}
	if cfg.Proxy != "socks5://127.0.0.1:9050" {
		t.Errorf("expected proxy, got %q", cfg.Proxy)
	}
	if cfg.UserAgent != "custom-agent/1.0" {
		t.Errorf("expected custom user agent, got %q", cfg.UserAgent)
	}
	if cfg.OutFile != "out.txt" || cfg.ReportFile != "report.md" {
		t.Errorf("expected output paths, got %q and %q", cfg.OutFile, cfg.ReportFile)
	}
	if !cfg.SaveToDB || cfg.DBDir != "/tmp/store" {
		t.Errorf("expected store flags, got save=%v dir=%q", cfg.SaveToDB, cfg.DBDir)
	}
}

func TestBuildConfigInvalidHeaders(t *testing.T) {
	t.Parallel()

	cmd := parseCrawlFlags(t, "-H", "not json")
	if _, err := buildConfig(cmd, []string{"https://example.com/"}); err == nil {
		t.Error("expected error for malformed headers JSON")
	}
}

func TestBuildConfigExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	cmd := parseCrawlFlags(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := buildConfig(cmd, []string{"https://example.com/"}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestBuildConfigWithConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".scuwl")
	content := `sites:
  example.com:
    cookie: "session=abc"
    depth: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := parseCrawlFlags(t, "-c", path)
	cfg, err := buildConfig(cmd, []string{"https://example.com/"})
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	site := cfg.SiteConfigs.GetSiteConfig("example.com")
	if site.Cookie != "session=abc" {
		t.Errorf("expected cookie from config file, got %q", site.Cookie)
	}
	if site.Depth == nil || *site.Depth != 3 {
		t.Error("expected depth override from config file")
	}
}

func TestRunCrawlWritesOutputs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`<html><body><p>alpha bravo</p><a href="/next">charlie</a></body></html>`))
		case "/next":
			_, _ = w.Write([]byte(`<html><body><p>delta</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Seeds = []string{srv.URL + "/"}
	cfg.Depth = 1
	cfg.MinLength = 3
	cfg.UserAgent = "scuwl/test"
	cfg.OutFile = filepath.Join(dir, "wordlist.txt")
	cfg.ReportFile = filepath.Join(dir, "report.md")
	cfg.DBDir = filepath.Join(dir, "store")
	cfg.SaveToDB = true
	cfg.SiteConfigs = &config.File{Sites: map[string]config.SiteConfig{}}

	if err := runCrawl(context.Background(), cfg); err != nil {
		t.Fatalf("crawl run failed: %v", err)
	}

	data, err := os.ReadFile(cfg.OutFile)
	if err != nil {
		t.Fatalf("failed to read wordlist: %v", err)
	}
	if got, want := string(data), "alpha\nbravo\ncharlie\ndelta\n"; got != want {
		t.Errorf("expected wordlist %q, got %q", want, got)
	}

	report, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(report), srv.URL) {
		t.Errorf("expected seed URL in report:\n%s", report)
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open wordlist store: %v", err)
	}
	defer db.Close() //nolint:errcheck

	words, err := db.Words(context.Background())
	if err != nil {
		t.Fatalf("failed to query stored words: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"alpha", "bravo", "charlie", "delta"}) {
		t.Errorf("expected stored wordlist, got %v", words)
	}
}
