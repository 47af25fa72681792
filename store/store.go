// Package store persists partitioned documents and their elements in
// SQLite, so repeated runs over a corpus can skip or diff earlier output.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brunobiangulo/gopartition/element"
)

// ErrDocumentNotFound is returned when a document ID or path does not exist.
var ErrDocumentNotFound = errors.New("store: document not found")

// Document represents a row in the documents table.
type Document struct {
	ID           int64  `json:"id"`
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	Filetype     string `json:"filetype"`
	LastModified string `json:"last_modified,omitempty"`
	ElementCount int    `json:"element_count"`
	Properties   string `json:"properties,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument inserts the document and its elements in one transaction,
// replacing any earlier row for the same path. Returns the document ID.
func (s *Store) SaveDocument(ctx context.Context, doc Document, elements []element.Element) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, doc.Path); err != nil {
		return 0, fmt.Errorf("replacing document %s: %w", doc.Path, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO documents (path, filename, filetype, last_modified, element_count, properties)
		VALUES (?, ?, ?, ?, ?, ?)`,
		doc.Path, doc.Filename, doc.Filetype, doc.LastModified, len(elements), doc.Properties,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting document %s: %w", doc.Path, err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elements (document_id, element_id, category, text, metadata, position)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing element insert: %w", err)
	}
	defer stmt.Close()

	for i, el := range elements {
		meta, err := json.Marshal(el.Metadata)
		if err != nil {
			return 0, fmt.Errorf("marshaling element metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, docID, el.ID, string(el.Category), el.Text, string(meta), i); err != nil {
			return 0, fmt.Errorf("inserting element %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return docID, nil
}

// Elements loads a document's elements in partition order.
func (s *Store) Elements(ctx context.Context, documentID int64) ([]element.Element, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT element_id, category, text, metadata
		FROM elements WHERE document_id = ? ORDER BY position`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying elements: %w", err)
	}
	defer rows.Close()

	var elements []element.Element
	for rows.Next() {
		var el element.Element
		var category, meta string
		if err := rows.Scan(&el.ID, &category, &el.Text, &meta); err != nil {
			return nil, err
		}
		el.Category = element.Category(category)
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &el.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling element metadata: %w", err)
			}
		}
		elements = append(elements, el)
	}
	return elements, rows.Err()
}

// GetDocument looks a document up by path.
func (s *Store) GetDocument(ctx context.Context, path string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, filename, filetype, COALESCE(last_modified, ''),
		       element_count, COALESCE(properties, ''), created_at
		FROM documents WHERE path = ?`, path)

	var doc Document
	err := row.Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Filetype,
		&doc.LastModified, &doc.ElementCount, &doc.Properties, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns all saved documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, filename, filetype, COALESCE(last_modified, ''),
		       element_count, COALESCE(properties, ''), created_at
		FROM documents ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Filename, &doc.Filetype,
			&doc.LastModified, &doc.ElementCount, &doc.Properties, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and its elements.
func (s *Store) DeleteDocument(ctx context.Context, documentID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("deleting document %d: %w", documentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrDocumentNotFound, documentID)
	}
	return nil
}
