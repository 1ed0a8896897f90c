package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/layoutkit/model"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	component_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS components (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	type        TEXT NOT NULL,
	page        INTEGER NOT NULL,
	x1 REAL NOT NULL, y1 REAL NOT NULL, x2 REAL NOT NULL, y2 REAL NOT NULL,
	text        TEXT NOT NULL DEFAULT '',
	payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_components_document ON components(document_id, seq);
CREATE INDEX IF NOT EXISTS idx_documents_name ON documents(name);
`

// Document is one stored extraction run
type Document struct {
	ID             int64
	Name           string
	CreatedAt      time.Time
	ComponentCount int
}

// Record is a stored component. Payload holds the component's JSON form.
type Record struct {
	Seq     int
	Type    model.ComponentType
	Page    int
	BBox    model.BBox
	Text    string
	Payload json.RawMessage
}

// Store persists extracted components in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// pragmas are applied to every pooled connection through the DSN
const pragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=synchronous(NORMAL)"

// Open opens or creates the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?"+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores comps under a new document and returns its id.
func (s *Store) Save(ctx context.Context, name string, comps []model.Component) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO documents (name, created_at, component_count) VALUES (?, ?, ?)`,
			name, s.now().UTC().Format(time.RFC3339Nano), len(comps))
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO components (document_id, seq, type, page, x1, y1, x2, y2, text, payload)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, c := range comps {
			payload, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("encode component %d: %w", i, err)
			}
			if _, err := stmt.ExecContext(ctx, id, i, string(c.Type), c.Page,
				c.BBox.X1, c.BBox.Y1, c.BBox.X2, c.BBox.Y2, c.String(), string(payload)); err != nil {
				return fmt.Errorf("insert component %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Components returns the stored components of a document in their
// original order.
func (s *Store) Components(ctx context.Context, docID int64) ([]Record, error) {
	if _, err := s.Document(ctx, docID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, type, page, x1, y1, x2, y2, text, payload
		 FROM components WHERE document_id = ? ORDER BY seq`, docID)
	if err != nil {
		return nil, fmt.Errorf("query components: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var typ, payload string
		if err := rows.Scan(&r.Seq, &typ, &r.Page, &r.BBox.X1, &r.BBox.Y1, &r.BBox.X2, &r.BBox.Y2, &r.Text, &payload); err != nil {
			return nil, err
		}
		r.Type = model.ComponentType(typ)
		r.Payload = json.RawMessage(payload)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Document returns one stored document
func (s *Store) Document(ctx context.Context, docID int64) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, component_count FROM documents WHERE id = ?`, docID)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%w: %d", ErrNotFound, docID)
	}
	return d, err
}

// Documents lists stored documents, newest first. A non-empty name
// restricts the list to that name.
func (s *Store) Documents(ctx context.Context, name string) ([]Document, error) {
	q := `SELECT id, name, created_at, component_count FROM documents`
	var args []interface{}
	if name != "" {
		q += ` WHERE name = ?`
		args = append(args, name)
	}
	q += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a document and its components
func (s *Store) Delete(ctx context.Context, docID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, docID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, docID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(sc scanner) (Document, error) {
	var d Document
	var created string
	if err := sc.Scan(&d.ID, &d.Name, &created, &d.ComponentCount); err != nil {
		return Document{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Document{}, fmt.Errorf("document %d created_at: %w", d.ID, err)
	}
	d.CreatedAt = t
	return d, nil
}

const maxRetries = 3

// withTx runs fn in a transaction, retrying while the database is busy.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		var tx *sql.Tx
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			if isBusy(err) {
				continue
			}
			return fmt.Errorf("begin transaction: %w", err)
		}
		if err = fn(tx); err != nil {
			tx.Rollback()
			if isBusy(err) {
				continue
			}
			return err
		}
		if err = tx.Commit(); err != nil {
			if isBusy(err) {
				continue
			}
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", maxRetries, err)
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
