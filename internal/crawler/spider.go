package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/petebuffon/scuwl/internal/config"
	"github.com/petebuffon/scuwl/internal/model"
	"github.com/petebuffon/scuwl/internal/wordlist"
)

// Spider crawls one site from a seed URL and feeds every fetched page
// through the word extractor. Each page is an independent goroutine; the
// spider tracks them with a WaitGroup so Crawl only returns when the whole
// traversal tree has drained.
//
// Design decision: We spawn a goroutine per page instead of running a worker
// pool over a queue because the fetch permit pool already bounds the only
// expensive resource (in-flight requests). Waiting tasks are just parked
// goroutines, which are cheap, and the structure mirrors the traversal:
// one task per page, children spawned after their parent's links are known.
type Spider struct {
	// seed is the parsed start URL.
	seed *url.URL

	// origin is the seed's scheme and host; the crawl never leaves it.
	origin *url.URL

	// maxDepth is the hard depth cutoff. A page at maxDepth is fetched
	// and mined for words but its links are not even discovered.
	maxDepth int

	// userAgent is used for requests and robots.txt matching.
	userAgent string

	// client is shared by page fetches and the robots.txt fetch.
	client *http.Client

	// permits caps in-flight fetches, shared with other spiders when
	// several seeds are crawled at once.
	permits *semaphore.Weighted

	fetcher   *Fetcher
	extractor *wordlist.Extractor
	norm      *Normalizer
	gate      *Gate
	visited   *visitedSet
	words     *wordlist.Set

	// wg tracks every spawned crawl task, transitively.
	wg sync.WaitGroup

	// mu guards the page counters below.
	mu      sync.Mutex
	fetched int
	failed  int
}

// Option configures a Spider.
type Option func(*Spider)

// WithClient sets a shared HTTP client instead of building one from the
// configuration. Used by multi-seed runs and tests.
func WithClient(client *http.Client) Option {
	return func(s *Spider) {
		s.client = client
	}
}

// WithPermits sets a shared fetch permit pool. A multi-seed run passes the
// same pool to every spider so the global concurrency cap holds across the
// whole process.
func WithPermits(sem *semaphore.Weighted) Option {
	return func(s *Spider) {
		s.permits = sem
	}
}

// New creates a Spider for one seed URL, applying any per-host overrides
// from the config file (headers, cookie, depth). Words are added to the
// given shared set.
func New(cfg *config.Config, seedURL string, words *wordlist.Set, opts ...Option) (*Spider, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if (seed.Scheme != "http" && seed.Scheme != "https") || seed.Host == "" {
		return nil, fmt.Errorf("invalid seed URL: %q", seedURL)
	}

	depth := cfg.Depth
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	if cfg.SiteConfigs != nil {
		site := cfg.SiteConfigs.GetSiteConfig(seed.Hostname())
		for k, v := range site.Headers {
			headers[k] = v
		}
		if site.Cookie != "" {
			headers["Cookie"] = site.Cookie
		}
		if site.Depth != nil && *site.Depth >= 0 {
			depth = *site.Depth
		}
	}

	s := &Spider{
		seed:      seed,
		origin:    &url.URL{Scheme: seed.Scheme, Host: seed.Host},
		maxDepth:  depth,
		userAgent: cfg.UserAgent,
		visited:   newVisitedSet(),
		words:     words,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client, err = NewClient(cfg.Proxy, cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}
	if s.permits == nil {
		s.permits = semaphore.NewWeighted(cfg.Concurrency)
	}

	s.fetcher = NewFetcher(s.client, s.permits,
		WithUserAgent(cfg.UserAgent),
		WithHeaders(headers),
		WithMaxBodySize(cfg.MaxBodySize),
	)
	s.norm = NewNormalizer(s.origin)
	s.extractor = wordlist.NewExtractor(wordlist.Options{
		MinLength:        cfg.MinLength,
		MaxLength:        cfg.MaxLength,
		StripPunctuation: cfg.StripPunctuation,
		AlphaOnly:        cfg.AlphaOnly,
		TablesOnly:       cfg.TablesOnly,
	}, words)

	return s, nil
}

// Crawl runs the traversal to completion or cancellation and returns a
// summary. The returned error is non-nil only when the context was
// cancelled; per-page failures never surface here.
func (s *Spider) Crawl(ctx context.Context) (*model.CrawlReport, error) {
	start := time.Now()

	// The robots.txt ruleset is built once, before any traversal task
	// exists, so tasks can query the gate without synchronization.
	s.gate = NewGate(ctx, s.client, s.origin, s.userAgent)

	// The seed is recorded in the visited set but never gated: the crawl
	// always fetches its own starting point.
	s.visited.markIfNew(s.seed.String())

	s.wg.Add(1)
	go s.crawl(ctx, s.seed, 0)
	s.wg.Wait()

	s.mu.Lock()
	fetched, failed := s.fetched, s.failed
	s.mu.Unlock()

	slog.Debug("crawl finished",
		"seed", s.seed.String(),
		"pages_fetched", fetched,
		"pages_failed", failed,
		"urls_seen", s.visited.size(),
		"elapsed", time.Since(start),
	)

	return &model.CrawlReport{
		Seed:         s.seed.String(),
		StartedAt:    start,
		Duration:     time.Since(start),
		PagesFetched: fetched,
		PagesFailed:  failed,
		Words:        s.words.Len(),
		Cancelled:    ctx.Err() != nil,
	}, ctx.Err()
}

// Visited returns the number of distinct URLs recorded, seed included.
func (s *Spider) Visited() int {
	return s.visited.size()
}

// crawl is one traversal task: fetch, extract, discover, spawn children.
// Empty content is the leaf condition alongside the depth cutoff.
func (s *Spider) crawl(ctx context.Context, u *url.URL, depth int) {
	defer s.wg.Done()

	if ctx.Err() != nil {
		return
	}

	text := s.fetcher.Fetch(ctx, u.String())
	if text == "" {
		if ctx.Err() == nil {
			s.recordFailed()
		}
		return
	}

	page, err := Parse(strings.NewReader(text))
	if err != nil {
		s.recordFailed()
		return
	}
	page.URL = u.String()
	page.Depth = depth

	s.extractor.Extract(page)
	s.recordFetched()

	// Hard depth cutoff: links on a page at maxDepth are not discovered
	// at all, so nothing below this level is ever fetched.
	if depth == s.maxDepth {
		return
	}

	for _, link := range s.discover(page, u) {
		s.wg.Add(1)
		go s.crawl(ctx, link, depth+1)
	}
}

// discover normalizes the page's anchors, drops robots-disallowed targets,
// and claims the survivors in the visited set. A URL two tasks race on is
// returned to exactly one of them.
func (s *Spider) discover(page *model.Page, base *url.URL) []*url.URL {
	links := make([]*url.URL, 0, len(page.Anchors))
	for _, anchor := range page.Anchors {
		target, ok := s.norm.Normalize(anchor, base)
		if !ok {
			continue
		}

		// Gate before the visited insert: a disallowed URL never
		// claims a slot, so a later rediscovery re-checks the gate.
		if !s.gate.Allowed(target) {
			slog.Debug("robots.txt disallows", "url", target)
			continue
		}

		if !s.visited.markIfNew(target) {
			continue
		}

		u, err := url.Parse(target)
		if err != nil {
			continue
		}
		links = append(links, u)
	}
	return links
}

func (s *Spider) recordFetched() {
	s.mu.Lock()
	s.fetched++
	s.mu.Unlock()
}

func (s *Spider) recordFailed() {
	s.mu.Lock()
	s.failed++
	s.mu.Unlock()
}
