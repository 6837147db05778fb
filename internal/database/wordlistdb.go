package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// WordlistDB stores finished wordlists, one row per crawl plus one row per
// (crawl, word) pair, so later exports can merge any number of crawls.
type WordlistDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures WordlistDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a WordlistDB in the given directory.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned; export uses this so it never creates an empty store.
func Open(dbDir string, opts Options) (*WordlistDB, error) {
	dbPath := filepath.Join(dbDir, "scuwl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("wordlist store not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	wdb := &WordlistDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := wdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return wdb, nil
}

// Close closes the database connection.
func (wdb *WordlistDB) Close() error {
	return wdb.db.Close()
}

// Path returns the database file path.
func (wdb *WordlistDB) Path() string {
	return wdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (wdb *WordlistDB) createTables() error {
	schema := `
	-- One row per finished crawl
	CREATE TABLE IF NOT EXISTS crawls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		word_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_crawls_seed ON crawls(seed);
	CREATE INDEX IF NOT EXISTS idx_crawls_timestamp ON crawls(timestamp);

	-- One row per word per crawl
	CREATE TABLE IF NOT EXISTS words (
		crawl_id INTEGER NOT NULL REFERENCES crawls(id) ON DELETE CASCADE,
		word TEXT NOT NULL,
		PRIMARY KEY (crawl_id, word)
	);

	CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
	`

	_, err := wdb.db.ExecContext(context.Background(), schema)
	return err
}

// CrawlRecord is one stored crawl's metadata.
type CrawlRecord struct {
	ID        int64
	Seed      string
	Timestamp time.Time
	WordCount int
}

// SaveCrawl stores a finished crawl's wordlist and returns the crawl ID.
// The crawl row and all word rows are written in one transaction so a
// failed save leaves no partial wordlist behind.
func (wdb *WordlistDB) SaveCrawl(ctx context.Context, seed string, words []string) (int64, error) {
	tx, err := wdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx,
		"INSERT INTO crawls (seed, word_count) VALUES (?, ?)",
		seed, len(words),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert crawl: %w", err)
	}

	crawlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get crawl ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO words (crawl_id, word) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck

	for _, word := range words {
		if _, err := stmt.ExecContext(ctx, crawlID, word); err != nil {
			return 0, fmt.Errorf("failed to insert word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return crawlID, nil
}

// Words returns every distinct stored word in lexicographic order, merged
// across all crawls.
func (wdb *WordlistDB) Words(ctx context.Context) ([]string, error) {
	rows, err := wdb.db.QueryContext(ctx,
		"SELECT DISTINCT word FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	words := make([]string, 0)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// SeedWords returns the distinct words stored for crawls of one seed, in
// lexicographic order.
func (wdb *WordlistDB) SeedWords(ctx context.Context, seed string) ([]string, error) {
	rows, err := wdb.db.QueryContext(ctx, `
		SELECT DISTINCT w.word
		FROM words w
		JOIN crawls c ON c.id = w.crawl_id
		WHERE c.seed = ?
		ORDER BY w.word`, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	words := make([]string, 0)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// Crawls lists stored crawls, newest first.
func (wdb *WordlistDB) Crawls(ctx context.Context) ([]CrawlRecord, error) {
	rows, err := wdb.db.QueryContext(ctx,
		"SELECT id, seed, timestamp, word_count FROM crawls ORDER BY timestamp DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query crawls: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	records := make([]CrawlRecord, 0)
	for rows.Next() {
		var rec CrawlRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Seed, &ts, &rec.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan crawl: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
