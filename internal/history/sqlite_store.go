package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rshade/ecotrack/internal/logging"
)

//go:embed sql/schema.sql
var schemaSQL string

//go:embed sql/insert-entry.sql
var insertEntrySQL string

//go:embed sql/select-entries.sql
var selectEntriesSQL string

// SQLiteStore keeps one row per entry; the autoincrement sequence is the
// insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists. A path of ":memory:" gives a private
// in-memory database.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	// SQLite serializes writers; one connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", pingErr)
	}
	if _, execErr := db.ExecContext(ctx, schemaSQL); execErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", execErr)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already opened database. The schema must exist.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns all entries in insertion order. Query failures read as an
// empty history; rows that fail to decode are skipped.
func (s *SQLiteStore) Load(ctx context.Context) []Entry {
	log := logging.FromContext(ctx)

	rows, err := s.db.QueryContext(ctx, selectEntriesSQL)
	if err != nil {
		log.Warn().Str("component", "history").Err(err).Msg("history query failed, treating as empty")
		return []Entry{}
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Str("component", "history").Err(closeErr).Msg("close history rows")
		}
	}()

	entries := []Entry{}
	for rows.Next() {
		var seq int64
		var payload string
		if scanErr := rows.Scan(&seq, &payload); scanErr != nil {
			log.Warn().Str("component", "history").Err(scanErr).Msg("skipping unreadable history row")
			continue
		}
		var e Entry
		if jsonErr := json.Unmarshal([]byte(payload), &e); jsonErr != nil {
			log.Warn().Str("component", "history").Int64("seq", seq).Err(jsonErr).Msg("skipping corrupt history row")
			continue
		}
		entries = append(entries, e)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Warn().Str("component", "history").Err(rowsErr).Msg("history iteration failed, treating as empty")
		return []Entry{}
	}
	return entries
}

// Append inserts e as the newest entry.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling history entry: %w", err)
	}
	if _, err = s.db.ExecContext(ctx, insertEntrySQL, e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano), string(payload)); err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func buildDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("sqlite path cannot be empty")
	}
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on", nil
	}

	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return "", fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	params := []string{
		"_foreign_keys=on",
		"_busy_timeout=5000",
		"_journal_mode=WAL",
	}

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}
