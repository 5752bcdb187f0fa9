package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NewsPlatter/internal/ports"
)

const documentsTable = "documents"

const schema = `CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    data       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
)`

// PostgresStore keeps documents as JSONB rows keyed by (collection, id).
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.DocumentStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// OpenPostgres connects with the lib/pq driver and creates the table if needed.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the documents table.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (ports.Document, error) {
	query, args, err := s.builder.
		Select("data").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get: %w", err)
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decodeDocument(raw)
}

// Exists returns a map with the ids that already exist in the collection.
func (s *PostgresStore) Exists(ctx context.Context, collection string, ids []string) (map[string]bool, error) {
	result := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := s.builder.
		Select("id").
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		Where("id = ANY(?)", pq.Array(ids)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exists: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}

// Set upserts the document. A merge keeps top-level fields the new document
// does not mention.
func (s *PostgresStore) Set(ctx context.Context, collection, id string, doc ports.Document, merge bool) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", collection, id, err)
	}

	conflict := "ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()"
	if merge {
		conflict = "ON CONFLICT (collection, id) DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = NOW()"
	}

	query, args, err := s.builder.
		Insert(documentsTable).
		Columns("collection", "id", "data", "updated_at").
		Values(collection, id, sq.Expr("?::jsonb", string(raw)), sq.Expr("NOW()")).
		Suffix(conflict).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	query, args, err := s.buildQuery(collection, q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []ports.Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return docs, nil
}

func (s *PostgresStore) buildQuery(collection string, q ports.Query) sq.SelectBuilder {
	sel := s.builder.
		Select("data").
		From(documentsTable).
		Where(sq.Eq{"collection": collection})

	if q.RangeField != "" {
		if q.From != nil {
			sel = sel.Where("data->>? >= ?", q.RangeField, fmt.Sprint(q.From))
		}
		if q.To != nil {
			sel = sel.Where("data->>? <= ?", q.RangeField, fmt.Sprint(q.To))
		}
	}
	if q.MinField != "" {
		sel = sel.Where("(data->>?)::numeric > ?", q.MinField, q.Above)
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		sel = sel.OrderByClause("data->? "+dir+" NULLS LAST", q.OrderBy)
	}
	if q.Limit > 0 {
		sel = sel.Limit(uint64(q.Limit))
	}
	return sel
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func decodeDocument(raw []byte) (ports.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc ports.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
