package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Schnee111/intrasearch/internal/model"
)

// SearchDB provides SQLite-based storage for crawled pages and the
// search history. It is the durable side of the system: the in-memory
// index is rebuilt from the pages table on startup.
//
// Design decision: We keep one database file for pages and history
// rather than separate files. Route reconstruction joins pages against
// themselves via discovered_via, and a single file simplifies backup.
type SearchDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SearchDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance while a crawl is writing.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// dbFileName is the SQLite file created inside the database directory.
const dbFileName = "intrasearch.db"

// Open opens or creates a SearchDB in the specified directory.
func Open(dbDir string, opts Options) (*SearchDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a crawl first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single pooled connection
	// avoids SQLITE_BUSY churn during crawl writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SearchDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *SearchDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *SearchDB) createTables() error {
	schema := `
	-- Pages are keyed by canonical URL. discovered_via is a weak
	-- reference to the parent page's URL, walked for route provenance.
	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		raw_links TEXT NOT NULL,
		depth INTEGER NOT NULL,
		discovered_via TEXT,
		last_crawled DATETIME NOT NULL,
		status_code INTEGER NOT NULL DEFAULT 200
	);

	CREATE INDEX IF NOT EXISTS idx_pages_last_crawled ON pages(last_crawled);
	CREATE INDEX IF NOT EXISTS idx_pages_discovered_via ON pages(discovered_via);

	-- Search history is an append-only log with auto-increment ids.
	CREATE TABLE IF NOT EXISTS search_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		domain_filter TEXT NOT NULL DEFAULT '',
		result_count INTEGER NOT NULL,
		execution_ms REAL NOT NULL,
		cached BOOLEAN NOT NULL DEFAULT FALSE,
		searched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_history_searched_at ON search_history(searched_at);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertPage inserts or replaces a page record keyed by canonical URL.
// A page is written whole or not at all: the caller only calls this
// after a successful fetch and parse.
func (sdb *SearchDB) UpsertPage(ctx context.Context, page *model.Page) error {
	linksJSON, err := json.Marshal(page.RawLinks)
	if err != nil {
		return fmt.Errorf("failed to serialize links: %w", err)
	}

	query := `
	INSERT INTO pages (url, title, content, raw_links, depth, discovered_via, last_crawled, status_code)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		title = excluded.title,
		content = excluded.content,
		raw_links = excluded.raw_links,
		depth = excluded.depth,
		discovered_via = excluded.discovered_via,
		last_crawled = excluded.last_crawled,
		status_code = excluded.status_code
	`

	_, err = sdb.db.ExecContext(ctx, query,
		page.URL,
		page.Title,
		page.Content,
		string(linksJSON),
		page.Depth,
		page.DiscoveredVia,
		page.LastCrawled.UTC().Format(time.RFC3339Nano),
		page.StatusCode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page: %w", err)
	}
	return nil
}

// GetPage retrieves a page by canonical URL. Returns (nil, nil) when the
// page does not exist.
func (sdb *SearchDB) GetPage(ctx context.Context, url string) (*model.Page, error) {
	row := sdb.db.QueryRowContext(ctx, `
	SELECT url, title, content, raw_links, depth, discovered_via, last_crawled, status_code
	FROM pages WHERE url = ?
	`, url)

	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}

// ListPages returns all pages ordered by rowid, which preserves
// first-insertion order across runs. The index rebuild relies on this
// order so that empty-query listings stay stable.
func (sdb *SearchDB) ListPages(ctx context.Context) ([]*model.Page, error) {
	rows, err := sdb.db.QueryContext(ctx, `
	SELECT url, title, content, raw_links, depth, discovered_via, last_crawled, status_code
	FROM pages ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*model.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// CountPages returns the number of stored pages.
func (sdb *SearchDB) CountPages(ctx context.Context) (int, error) {
	var count int
	if err := sdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for scanPage.
type scanner interface {
	Scan(dest ...any) error
}

// scanPage reads one pages row.
func scanPage(s scanner) (*model.Page, error) {
	var page model.Page
	var linksJSON string
	var discoveredVia sql.NullString
	var lastCrawled string

	if err := s.Scan(
		&page.URL,
		&page.Title,
		&page.Content,
		&linksJSON,
		&page.Depth,
		&discoveredVia,
		&lastCrawled,
		&page.StatusCode,
	); err != nil {
		return nil, err
	}

	if linksJSON != "" {
		if err := json.Unmarshal([]byte(linksJSON), &page.RawLinks); err != nil {
			return nil, fmt.Errorf("failed to parse links: %w", err)
		}
	}
	page.DiscoveredVia = discoveredVia.String
	page.LastCrawled = parseTimestamp(lastCrawled)
	return &page, nil
}

// Route reconstructs the provenance path from a seed page to url by
// walking discovered_via pointers backwards. The walk is bounded by
// maxRouteHops so a corrupted parent chain can never loop forever.
func (sdb *SearchDB) Route(ctx context.Context, url string) ([]model.RouteStep, error) {
	const maxRouteHops = 64

	var route []model.RouteStep
	seen := make(map[string]bool)
	current := url

	for current != "" && !seen[current] && len(route) < maxRouteHops {
		seen[current] = true

		var title string
		var parent sql.NullString
		err := sdb.db.QueryRowContext(ctx,
			`SELECT title, discovered_via FROM pages WHERE url = ?`, current,
		).Scan(&title, &parent)
		if err == sql.ErrNoRows {
			// Parent never stored (e.g. crawl stopped before it was
			// written). The partial route is still useful.
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to walk route: %w", err)
		}

		// Prepend: the walk goes child -> seed, the route reads
		// seed -> child.
		route = append([]model.RouteStep{{URL: current, Title: title}}, route...)
		current = parent.String
	}

	return route, nil
}

// InsertHistory appends a search history record and returns its id.
func (sdb *SearchDB) InsertHistory(ctx context.Context, entry *model.HistoryEntry) (int64, error) {
	result, err := sdb.db.ExecContext(ctx, `
	INSERT INTO search_history (query, domain_filter, result_count, execution_ms, cached, searched_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		entry.Query,
		entry.DomainFilter,
		entry.ResultCount,
		float64(entry.ExecutionTime)/float64(time.Millisecond),
		entry.Cached,
		entry.SearchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history: %w", err)
	}
	return result.LastInsertId()
}

// ListHistory returns history records, most recent first, capped at
// limit. A non-positive limit returns everything.
func (sdb *SearchDB) ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	q := `
	SELECT id, query, domain_filter, result_count, execution_ms, cached, searched_at
	FROM search_history ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		var execMs float64
		var searchedAt string

		if err := rows.Scan(
			&entry.ID,
			&entry.Query,
			&entry.DomainFilter,
			&entry.ResultCount,
			&execMs,
			&entry.Cached,
			&searchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entry.ExecutionTime = time.Duration(execMs * float64(time.Millisecond))
		entry.SearchedAt = parseTimestamp(searchedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountHistory returns the number of history records.
func (sdb *SearchDB) CountHistory(ctx context.Context) (int, error) {
	var count int
	if err := sdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// DeleteHistoryEntry removes one history record by id. Returns false
// when no record had that id.
func (sdb *SearchDB) DeleteHistoryEntry(ctx context.Context, id int64) (bool, error) {
	result, err := sdb.db.ExecContext(ctx, `DELETE FROM search_history WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete history entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearHistory removes all history records and returns how many were
// deleted.
func (sdb *SearchDB) ClearHistory(ctx context.Context) (int64, error) {
	result, err := sdb.db.ExecContext(ctx, `DELETE FROM search_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return result.RowsAffected()
}

// timestampFormats contains the timestamp formats SQLite may return.
// The order matters: more specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite returns different formats depending on how the value
// was written. Returns the zero time when nothing matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
