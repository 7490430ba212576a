package faq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/ahmadmousily/FAQ-Question/pkg/errors"
)

type stubEncoder struct {
	dim      int
	encoded  []string
	override func(text string) ([]float32, error)
}

func (e *stubEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	e.encoded = append(e.encoded, text)
	if e.override != nil {
		return e.override(text)
	}
	vector := make([]float32, e.dim)
	for i, r := range text {
		vector[i%e.dim] += float32(r)
	}
	return vector, nil
}

func (e *stubEncoder) Dimension() int { return e.dim }

type stubIndex struct {
	records   map[int64]Record
	searches  int
	searchFn  func(vector []float32, limit int, department string) ([]Hit, error)
	upsertErr map[int64]error
}

func newStubIndex() *stubIndex {
	return &stubIndex{records: map[int64]Record{}}
}

func (s *stubIndex) Ensure(context.Context, int) error   { return nil }
func (s *stubIndex) Recreate(context.Context, int) error { return nil }

func (s *stubIndex) Upsert(_ context.Context, record Record) error {
	if err := s.upsertErr[record.ID]; err != nil {
		return err
	}
	s.records[record.ID] = record
	return nil
}

func (s *stubIndex) Search(_ context.Context, vector []float32, limit int, department string) ([]Hit, error) {
	s.searches++
	if s.searchFn != nil {
		return s.searchFn(vector, limit, department)
	}
	return nil, nil
}

func (s *stubIndex) List(context.Context, int) ([]Entry, error) {
	entries := make([]Entry, 0, len(s.records))
	for _, record := range s.records {
		entries = append(entries, Entry{ID: record.ID, Question: record.Question, Answer: record.Answer, Department: record.Department})
	}
	return entries, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuilder_UpsertNormalizesAndWrites(t *testing.T) {
	enc := &stubEncoder{dim: 4}
	idx := newStubIndex()
	builder := NewBuilder(enc, idx, newTestLogger())

	written, err := builder.Upsert(context.Background(), []Entry{
		{ID: 1, Question: "How do I reset my password?", Answer: "Use settings.", Department: "Genreal"},
		{ID: 2, Question: "  padded question  ", Answer: " padded answer ", Department: ""},
	})
	require.NoError(t, err)
	require.Equal(t, 2, written)

	require.Equal(t, "General", idx.records[1].Department)
	require.Equal(t, "General", idx.records[2].Department)
	require.Equal(t, "padded question", idx.records[2].Question)
	require.Equal(t, "padded answer", idx.records[2].Answer)
	require.Len(t, idx.records[1].Vector, 4)
}

func TestBuilder_UpsertSkipsInvalidEntriesAndContinues(t *testing.T) {
	enc := &stubEncoder{dim: 4}
	idx := newStubIndex()
	builder := NewBuilder(enc, idx, newTestLogger())

	written, err := builder.Upsert(context.Background(), []Entry{
		{ID: 0, Question: "missing id", Answer: "a"},
		{ID: 2, Question: "", Answer: "a"},
		{ID: 3, Question: "q", Answer: ""},
		{ID: 4, Question: "valid", Answer: "valid answer"},
	})
	require.Error(t, err)
	require.Equal(t, 1, written)
	require.Contains(t, idx.records, int64(4))
}

func TestBuilder_UpsertContinuesPastStoreFailures(t *testing.T) {
	enc := &stubEncoder{dim: 4}
	idx := newStubIndex()
	idx.upsertErr = map[int64]error{2: errors.New("connection reset")}
	builder := NewBuilder(enc, idx, newTestLogger())

	written, err := builder.Upsert(context.Background(), []Entry{
		{ID: 1, Question: "first", Answer: "a"},
		{ID: 2, Question: "second", Answer: "a"},
		{ID: 3, Question: "third", Answer: "a"},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "store_error"))
	require.Equal(t, 2, written)
	require.Contains(t, idx.records, int64(1))
	require.Contains(t, idx.records, int64(3))
}

func TestBuilder_UpsertDuplicateIDsLastWriteWins(t *testing.T) {
	enc := &stubEncoder{dim: 4}
	idx := newStubIndex()
	builder := NewBuilder(enc, idx, newTestLogger())

	written, err := builder.Upsert(context.Background(), []Entry{
		{ID: 7, Question: "old phrasing", Answer: "old answer"},
		{ID: 7, Question: "new phrasing", Answer: "new answer"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, written)
	require.Equal(t, "new phrasing", idx.records[7].Question)
}

func TestBuilder_UpsertDimensionMismatchIsFatal(t *testing.T) {
	enc := &stubEncoder{dim: 4, override: func(string) ([]float32, error) {
		return make([]float32, 3), nil
	}}
	idx := newStubIndex()
	builder := NewBuilder(enc, idx, newTestLogger())

	written, err := builder.Upsert(context.Background(), []Entry{
		{ID: 1, Question: "q1", Answer: "a1"},
		{ID: 2, Question: "q2", Answer: "a2"},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "config_error"))
	require.Zero(t, written)
	require.Empty(t, idx.records)
	// batch aborted on first entry, the rest never encoded against a broken config
	require.Equal(t, []string{"q1"}, enc.encoded)
}

func TestBuilder_UpsertIsIdempotent(t *testing.T) {
	enc := &stubEncoder{dim: 4}
	idx := newStubIndex()
	builder := NewBuilder(enc, idx, newTestLogger())
	entries := []Entry{
		{ID: 1, Question: "q1", Answer: "a1", Department: "Support"},
		{ID: 2, Question: "q2", Answer: "a2", Department: "Billing"},
	}

	_, err := builder.Upsert(context.Background(), entries)
	require.NoError(t, err)
	snapshot := make(map[int64]Record, len(idx.records))
	for id, record := range idx.records {
		snapshot[id] = record
	}

	_, err = builder.Upsert(context.Background(), entries)
	require.NoError(t, err)
	require.Equal(t, snapshot, idx.records)
}
