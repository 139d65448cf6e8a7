package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// SQLStore keeps one collection in a SQLite table. Records are stored as
// JSON documents so list values survive unchanged.
type SQLStore struct {
	db    *sql.DB
	table string
}

// OpenSQL opens the SQLite database at dataSource and creates the table of
// collection when missing.
func OpenSQL(ctx context.Context, dataSource, collection string) (*SQLStore, error) {
	if collection != Teachers && collection != Courses {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	db, err := openDB(dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serialises writers; one connection keeps Add's id allocation
	// and insert together.
	db.SetMaxOpenConns(1)

	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id   INTEGER PRIMARY KEY,
	data TEXT NOT NULL
);`, collection)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s table: %w", collection, err)
	}
	return &SQLStore{db: db, table: collection}, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (teacherdoc.Record, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, &NotFoundError{Collection: s.table, ID: id}
	}
	var data string
	err = s.db.QueryRowContext(ctx, "SELECT data FROM "+s.table+" WHERE id = ?", n).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Collection: s.table, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s: %w", s.table, id, err)
	}
	return decodeRecord(data)
}

func (s *SQLStore) Add(ctx context.Context, rec teacherdoc.Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM "+s.table).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to allocate id: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO "+s.table+" (id, data) VALUES (?, ?)", id, string(data)); err != nil {
		return "", fmt.Errorf("failed to insert %s: %w", s.table, err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *SQLStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, data FROM "+s.table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.table, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id   int64
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: strconv.FormatInt(id, 10), Record: rec})
	}
	return entries, rows.Err()
}

func (s *SQLStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+s.table); err != nil {
		return fmt.Errorf("failed to reset %s: %w", s.table, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func decodeRecord(data string) (teacherdoc.Record, error) {
	var rec teacherdoc.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}
