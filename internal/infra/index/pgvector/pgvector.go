// Package pgvector implements faq.Index on Postgres with the pgvector
// extension.
package pgvector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvec "github.com/pgvector/pgvector-go"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

const tableName = "faq_entries"

// Index stores entries in a single table with a vector column. The `<=>`
// operator yields cosine distance in [0, 2]; scores are mapped to cosine
// similarity via 1 - distance before returning.
type Index struct {
	pool *pgxpool.Pool
}

// New constructs the index around an existing pool.
func New(pool *pgxpool.Pool) *Index {
	return &Index{pool: pool}
}

// Ensure creates the extension and table when absent.
func (i *Index) Ensure(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	if _, err := i.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	_, err := i.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			department TEXT NOT NULL,
			embedding vector(%d) NOT NULL
		)
	`, tableName, dimension))
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Recreate drops the table and builds it again.
func (i *Index) Recreate(ctx context.Context, dimension int) error {
	if _, err := i.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tableName)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	return i.Ensure(ctx, dimension)
}

// Upsert writes a row keyed by id.
func (i *Index) Upsert(ctx context.Context, record faq.Record) error {
	_, err := i.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, question, answer, department, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET question = EXCLUDED.question,
		    answer = EXCLUDED.answer,
		    department = EXCLUDED.department,
		    embedding = EXCLUDED.embedding
	`, tableName), record.ID, record.Question, record.Answer, record.Department, pgvec.NewVector(record.Vector))
	return err
}

// Search orders rows by cosine distance to vector, filtered on department
// when one is given.
func (i *Index) Search(ctx context.Context, vector []float32, limit int, department string) ([]faq.Hit, error) {
	if limit <= 0 {
		limit = 1
	}
	query := fmt.Sprintf(`
		SELECT id, question, answer, department, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1, id
		LIMIT $2
	`, tableName)
	args := []any{pgvec.NewVector(vector), limit}
	if department != "" {
		query = fmt.Sprintf(`
			SELECT id, question, answer, department, 1 - (embedding <=> $1) AS score
			FROM %s
			WHERE department = $3
			ORDER BY embedding <=> $1, id
			LIMIT $2
		`, tableName)
		args = append(args, department)
	}

	rows, err := i.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []faq.Hit
	for rows.Next() {
		var hit faq.Hit
		if err := rows.Scan(&hit.ID, &hit.Question, &hit.Answer, &hit.Department, &hit.Score); err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// List returns rows ordered by id.
func (i *Index) List(ctx context.Context, limit int) ([]faq.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := i.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, question, answer, department
		FROM %s
		ORDER BY id
		LIMIT $1
	`, tableName), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []faq.Entry
	for rows.Next() {
		var entry faq.Entry
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Department); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ faq.Index = (*Index)(nil)
