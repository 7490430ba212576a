// Package source loads raw FAQ tuples from external tabular data.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

// LoadCSV reads entries from a CSV file with an id,question,answer,department
// header. Raw department cells may carry a `;`-separated list; only the first
// token is kept (the rest are secondary tags from the upstream export).
// Malformed rows are logged and skipped; the load keeps going.
func LoadCSV(path string, logger *slog.Logger) ([]faq.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return parse(file, logger)
}

func parse(r io.Reader, logger *slog.Logger) ([]faq.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var entries []faq.Entry
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed csv row", "line", line, "error", err)
			continue
		}
		entry, err := buildEntry(row, columns)
		if err != nil {
			logger.Warn("skipping invalid csv row", "line", line, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type columnMap struct {
	id, question, answer, department int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{id: -1, question: -1, answer: -1, department: -1}
	for idx, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			cols.id = idx
		case "question":
			cols.question = idx
		case "answer":
			cols.answer = idx
		case "department":
			cols.department = idx
		}
	}
	if cols.id < 0 || cols.question < 0 || cols.answer < 0 {
		return cols, fmt.Errorf("csv header must contain id, question and answer columns, got %v", header)
	}
	return cols, nil
}

func buildEntry(row []string, cols columnMap) (faq.Entry, error) {
	if len(row) <= cols.id || len(row) <= cols.question || len(row) <= cols.answer {
		return faq.Entry{}, fmt.Errorf("row has %d fields", len(row))
	}
	id, err := strconv.ParseInt(strings.TrimSpace(row[cols.id]), 10, 64)
	if err != nil {
		return faq.Entry{}, fmt.Errorf("invalid id %q: %w", row[cols.id], err)
	}
	entry := faq.Entry{
		ID:       id,
		Question: strings.TrimSpace(row[cols.question]),
		Answer:   strings.TrimSpace(row[cols.answer]),
	}
	if cols.department >= 0 && len(row) > cols.department {
		entry.Department = CleanDepartment(row[cols.department])
	}
	return entry, nil
}

// CleanDepartment extracts the primary department from a raw cell: the first
// `;`-separated token, trimmed. Normalization proper (casing, aliases,
// sentinel) happens in the domain layer.
func CleanDepartment(raw string) string {
	first, _, _ := strings.Cut(raw, ";")
	return strings.TrimSpace(first)
}
