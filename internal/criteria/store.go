package criteria

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists criteria keyed by (product, result name). The detection
// core never touches a Store directly; it only consumes Set values the host
// assembles from one.
type Store interface {
	// Load returns stored entries, limited to one product when product is
	// non-empty.
	Load(product string) ([]Entry, error)
	// Save upserts entries and reports how many were written.
	Save(entries []Entry) (int, error)
	// Delete removes one criterion, or every criterion for a product when
	// result is empty. It reports how many rows were removed.
	Delete(product, result string) (int, error)
	Close() error
}

// SQLiteStore is the default on-disk Store.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) a criteria database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open criteria db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS criteria (
		item_number TEXT NOT NULL,
		result_name TEXT NOT NULL,
		lower_bound REAL NOT NULL,
		upper_bound REAL NOT NULL,
		updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (item_number, result_name)
	);
	CREATE INDEX IF NOT EXISTS idx_criteria_item ON criteria(item_number);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init criteria schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(product string) ([]Entry, error) {
	query := `SELECT item_number, result_name, lower_bound, upper_bound FROM criteria`
	args := []any{}
	if product != "" {
		query += ` WHERE item_number = ?`
		args = append(args, product)
	}
	query += ` ORDER BY item_number, result_name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("load criteria: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ItemNumber, &e.ResultName, &e.LowerBound, &e.UpperBound); err != nil {
			return nil, fmt.Errorf("scan criteria row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Save(entries []Entry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO criteria (item_number, result_name, lower_bound, upper_bound)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(item_number, result_name) DO UPDATE SET
		   lower_bound = excluded.lower_bound,
		   upper_bound = excluded.upper_bound,
		   updated_at  = CURRENT_TIMESTAMP`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	saved := 0
	for _, e := range entries {
		if _, err := stmt.Exec(e.ItemNumber, e.ResultName, e.LowerBound, e.UpperBound); err != nil {
			return saved, fmt.Errorf("save criterion (%s, %s): %w", e.ItemNumber, e.ResultName, err)
		}
		saved++
	}
	return saved, tx.Commit()
}

func (s *SQLiteStore) Delete(product, result string) (int, error) {
	var res sql.Result
	var err error
	if result == "" {
		res, err = s.db.Exec(`DELETE FROM criteria WHERE item_number = ?`, product)
	} else {
		res, err = s.db.Exec(`DELETE FROM criteria WHERE item_number = ? AND result_name = ?`, product, result)
	}
	if err != nil {
		return 0, fmt.Errorf("delete criteria: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
