package faq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/ahmadmousily/FAQ-Question/pkg/errors"
)

// Builder populates the index: it creates the collection with the encoder's
// dimensionality and writes entries as (id, vector, payload) records.
type Builder struct {
	encoder Encoder
	index   Index
	logger  *slog.Logger
}

// NewBuilder wires up the index population path.
func NewBuilder(encoder Encoder, index Index, logger *slog.Logger) *Builder {
	return &Builder{
		encoder: encoder,
		index:   index,
		logger:  logger.With("component", "faq.builder"),
	}
}

// EnsureIndex creates the collection if it does not exist yet. Safe to run on
// every startup.
func (b *Builder) EnsureIndex(ctx context.Context) error {
	if err := b.index.Ensure(ctx, b.encoder.Dimension()); err != nil {
		return apperrors.Wrap("config_error", "index creation failed", err)
	}
	return nil
}

// RebuildIndex drops and recreates the collection. Destructive: every stored
// entry is lost, so callers must opt in explicitly.
func (b *Builder) RebuildIndex(ctx context.Context) error {
	b.logger.Warn("recreating index, existing entries will be dropped", "dimension", b.encoder.Dimension())
	if err := b.index.Recreate(ctx, b.encoder.Dimension()); err != nil {
		return apperrors.Wrap("config_error", "index recreation failed", err)
	}
	return nil
}

// Upsert encodes and writes each entry, replacing any stored entry with the
// same id. Duplicate ids within the input resolve to the last occurrence.
// A store failure on one entry is recorded and the batch continues; the
// aggregated error is returned alongside the number of entries written.
// A dimension mismatch between a computed vector and the encoder's declared
// dimension aborts immediately: that is a configuration fault, not a
// per-record one.
func (b *Builder) Upsert(ctx context.Context, entries []Entry) (int, error) {
	var (
		written int
		failed  []error
	)
	for _, entry := range entries {
		record, err := b.buildRecord(ctx, entry)
		if err != nil {
			if apperrors.IsCode(err, "config_error") {
				return written, err
			}
			failed = append(failed, err)
			b.logger.Warn("skipping entry", "id", entry.ID, "error", err)
			continue
		}
		if err := b.index.Upsert(ctx, record); err != nil {
			failed = append(failed, apperrors.Wrap("store_error", fmt.Sprintf("upsert entry %d", entry.ID), err))
			b.logger.Warn("entry write failed", "id", entry.ID, "error", err)
			continue
		}
		written++
	}
	if len(failed) > 0 {
		return written, apperrors.Wrap("store_error", fmt.Sprintf("%d of %d entries failed", len(failed), len(entries)), errors.Join(failed...))
	}
	return written, nil
}

func (b *Builder) buildRecord(ctx context.Context, entry Entry) (Record, error) {
	if entry.ID <= 0 {
		return Record{}, apperrors.Wrap("invalid_input", fmt.Sprintf("entry id must be positive, got %d", entry.ID), nil)
	}
	question := strings.TrimSpace(entry.Question)
	if question == "" {
		return Record{}, apperrors.Wrap("invalid_input", fmt.Sprintf("entry %d has an empty question", entry.ID), nil)
	}
	answer := strings.TrimSpace(entry.Answer)
	if answer == "" {
		return Record{}, apperrors.Wrap("invalid_input", fmt.Sprintf("entry %d has an empty answer", entry.ID), nil)
	}

	vector, err := b.encoder.Encode(ctx, question)
	if err != nil {
		return Record{}, apperrors.Wrap("encoder_error", fmt.Sprintf("encode entry %d", entry.ID), err)
	}
	if len(vector) != b.encoder.Dimension() {
		return Record{}, apperrors.Wrap("config_error",
			fmt.Sprintf("embedding dimension %d does not match declared dimension %d", len(vector), b.encoder.Dimension()), nil)
	}

	return Record{
		ID:         entry.ID,
		Vector:     vector,
		Question:   question,
		Answer:     answer,
		Department: NormalizeDepartment(entry.Department),
	}, nil
}
