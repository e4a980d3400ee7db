// Package store persists saved editor documents in a local sqlite database.
// Documents are kept as their JSON form, listings carry summaries only.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"caret/editor"
)

// ErrNotFound is returned when the requested document is not in the store.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id      TEXT PRIMARY KEY,
	title   TEXT NOT NULL DEFAULT '',
	data    TEXT NOT NULL,
	updated INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS assets (
	document_id TEXT NOT NULL,
	name        TEXT NOT NULL,
	data        BLOB NOT NULL,
	PRIMARY KEY (document_id, name)
);
`

// Store is a document store over a sqlite connection pool, safe for
// concurrent use.
type Store struct {
	pool *sqlitex.Pool
	log  *zap.Logger
}

// Summary is what document listings carry, the payload stays in the store.
type Summary struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Blocks  int       `json:"blocks"`
	Updated time.Time `json:"updated"`
}

// Open creates or opens the database at path and makes sure the schema is in
// place.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		Flags:    sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL,
		PoolSize: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open document store at %q: %w", path, err)
	}

	st := &Store{pool: pool, log: log.Named("store")}
	if err := st.init(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	st.log.Debug("Document store ready", zap.String("path", path))
	return st, nil
}

func (st *Store) init(ctx context.Context) error {
	conn, err := st.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("unable to apply store schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (st *Store) Close() error {
	return st.pool.Close()
}

// SaveDocument inserts or replaces a document. Missing or invalid IDs get a
// fresh v7 assigned; the document as stored is returned.
func (st *Store) SaveDocument(ctx context.Context, doc editor.Document) (editor.Document, error) {
	if _, err := uuid.Parse(doc.ID); err != nil {
		id, err := uuid.NewV7()
		if err != nil {
			return doc, fmt.Errorf("unable to assign document ID: %w", err)
		}
		if doc.ID != "" {
			st.log.Warn("Document has invalid ID, correcting", zap.String("old_id", doc.ID), zap.Stringer("new_id", id))
		}
		doc.ID = id.String()
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return doc, fmt.Errorf("unable to serialize document %s: %w", doc.ID, err)
	}

	conn, err := st.pool.Take(ctx)
	if err != nil {
		return doc, fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO documents (id, title, data, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title=excluded.title, data=excluded.data, updated=excluded.updated`,
		&sqlitex.ExecOptions{Args: []any{doc.ID, doc.Title, string(data), time.Now().Unix()}})
	if err != nil {
		return doc, fmt.Errorf("unable to store document %s: %w", doc.ID, err)
	}

	st.log.Debug("Document stored", zap.String("id", doc.ID), zap.String("title", doc.Title), zap.Int("blocks", len(doc.Blocks)))
	return doc, nil
}

// Document loads a single document by ID.
func (st *Store) Document(ctx context.Context, id string) (*editor.Document, error) {
	conn, err := st.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	var raw string
	found := false
	err = sqlitex.Execute(conn, `SELECT data FROM documents WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				raw = stmt.ColumnText(0)
				found = true
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to read document %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return editor.ParseDocument([]byte(raw))
}

// Documents lists summaries for every stored document ordered naturally by
// title, ties broken by ID.
func (st *Store) Documents(ctx context.Context) ([]Summary, error) {
	conn, err := st.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	var out []Summary
	err = sqlitex.Execute(conn, `SELECT id, title, data, updated FROM documents`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			var doc editor.Document
			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &doc); err != nil {
				st.log.Warn("Skipping unreadable document", zap.String("id", stmt.ColumnText(0)), zap.Error(err))
				return nil
			}
			out = append(out, Summary{
				ID:      stmt.ColumnText(0),
				Title:   stmt.ColumnText(1),
				Blocks:  len(doc.Blocks),
				Updated: time.Unix(stmt.ColumnInt64(3), 0).UTC(),
			})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list documents: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return natural.Less(out[i].Title, out[j].Title)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveAsset stores a binary asset attached to a document, replacing any
// previous content under the same name.
func (st *Store) SaveAsset(ctx context.Context, docID, name string, data []byte) error {
	conn, err := st.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO assets (document_id, name, data) VALUES (?, ?, ?)
		ON CONFLICT(document_id, name) DO UPDATE SET data=excluded.data`,
		&sqlitex.ExecOptions{Args: []any{docID, name, data}})
	if err != nil {
		return fmt.Errorf("unable to store asset %s for document %s: %w", name, docID, err)
	}

	st.log.Debug("Asset stored", zap.String("id", docID), zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

// Assets loads every asset attached to a document keyed by name. A document
// without assets yields an empty map.
func (st *Store) Assets(ctx context.Context, docID string) (map[string][]byte, error) {
	conn, err := st.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	out := make(map[string][]byte)
	err = sqlitex.Execute(conn, `SELECT name, data FROM assets WHERE document_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{docID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data, err := io.ReadAll(stmt.ColumnReader(1))
				if err != nil {
					return err
				}
				out[stmt.ColumnText(0)] = data
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to read assets for document %s: %w", docID, err)
	}
	return out, nil
}

// DeleteDocument removes a document and its assets; deleting an unknown ID
// reports ErrNotFound.
func (st *Store) DeleteDocument(ctx context.Context, id string) error {
	conn, err := st.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("unable to get store connection: %w", err)
	}
	defer st.pool.Put(conn)

	if err := sqlitex.Execute(conn, `DELETE FROM documents WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return fmt.Errorf("unable to delete document %s: %w", id, err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	if err := sqlitex.Execute(conn, `DELETE FROM assets WHERE document_id = ?`,
		&sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return fmt.Errorf("unable to delete assets for document %s: %w", id, err)
	}

	st.log.Debug("Document deleted", zap.String("id", id))
	return nil
}
