// Package log provides secure logging built on the standard slog package.
//
// Crawls of authenticated sites carry session cookies and Authorization
// headers (the -H flag and per-site config), and those values must not leak
// into logs that may be attached to reports or shared. The SecureHandler
// masks credential-bearing attributes before they reach the underlying
// handler, even in verbose mode.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request sent",
//	    "cookie", "session=abc123", // masked
//	    "url", "https://example.com/login",
//	)
//	slog.SetDefault(logger)
package log
