package tabular

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/itm-analitica/concurso/pkg/metrics"
	_ "modernc.org/sqlite"
)

// SQLiteClient persists worksheets in a local SQLite file. It stands in for
// the hosted spreadsheet when the service runs self-contained; the schema is
// deliberately schemaless to match the real store (one TEXT column holding
// the JSON-encoded cells of a row).
type SQLiteClient struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS worksheet_rows (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	worksheet TEXT NOT NULL,
	cells     TEXT NOT NULL,
	added_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_worksheet_rows_worksheet ON worksheet_rows(worksheet);
`

// OpenSQLite opens (creating if needed) a SQLite-backed tabular store.
func OpenSQLite(path string) (*SQLiteClient, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty sqlite path", ErrUnavailable)
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: schema: %v", ErrUnavailable, err)
	}
	return &SQLiteClient{db: db}, nil
}

// Close releases the database handle.
func (c *SQLiteClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Rows returns every row of a worksheet in insertion order.
func (c *SQLiteClient) Rows(ctx context.Context, worksheet string) ([][]string, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("rows", float64(time.Since(start).Milliseconds()))
	}()

	rows, err := c.db.QueryContext(ctx,
		`SELECT cells FROM worksheet_rows WHERE worksheet = ? ORDER BY id`, worksheet)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrUnavailable, worksheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrUnavailable, worksheet, err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, worksheet, err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", ErrUnavailable, worksheet, err)
	}
	return out, nil
}

// Append adds one row at the end of a worksheet.
func (c *SQLiteClient) Append(ctx context.Context, worksheet string, row []string) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("append", float64(time.Since(start).Milliseconds()))
	}()

	encoded, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: encode row: %v", ErrUnavailable, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO worksheet_rows (worksheet, cells, added_at) VALUES (?, ?, ?)`,
		worksheet, string(encoded), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("%w: insert %s: %v", ErrUnavailable, worksheet, err)
	}
	return nil
}
