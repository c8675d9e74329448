// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvio

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickly-rank/ranking"
)

// Required header fields.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageURL    = "imageUrl"
)

var requiredFields = []string{FieldID, FieldTitle, FieldDescription, FieldImageURL}

// ImportResult is the outcome of a successful parse.
type ImportResult struct {
	Items    []ranking.Item
	Warnings []string
	// Insufficient is set when fewer than two items were read. The import
	// itself succeeded; the caller must ask for another source.
	Insufficient bool
}

// InsufficientError converts an Insufficient result into the error a
// session would return, or nil.
func (r ImportResult) InsufficientError() error {
	if !r.Insufficient {
		return nil
	}
	return &ranking.InsufficientItemsError{Count: len(r.Items)}
}

// Import parses delimited text from r. Reads stop with a *ReadError when ctx
// is cancelled.
//
// A row with broken quoting is skipped with a warning like a row with the
// wrong field count. A bare quote inside an unquoted field is kept as text.
// Only a quoted field left open at the end of the input fails the import.
func Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: r})
	if err != nil {
		return ImportResult{}, &ReadError{Err: err}
	}

	records, skipped, err := readAll(data)
	if err != nil {
		return ImportResult{}, err
	}
	if lines := len(records) + len(skipped); lines < 2 {
		return ImportResult{}, &ImportFormatError{
			Msg: fmt.Sprintf("need a header and at least one row, got %d line(s)", lines),
		}
	}

	header := records[0].fields
	columns, missing := indexHeader(header)
	if len(missing) > 0 {
		return ImportResult{}, &ImportFormatError{Line: records[0].line, Missing: missing}
	}

	result := ImportResult{Warnings: skipped}
	firstSeen := make(map[ranking.ItemID]int)
	for _, rec := range records[1:] {
		if len(rec.fields) != len(header) {
			msg := fmt.Sprintf("line %d: expected %d fields, got %d; row skipped", rec.line, len(header), len(rec.fields))
			slog.Warn("skipping malformed row", "line", rec.line, "fields", len(rec.fields), "expected", len(header))
			result.Warnings = append(result.Warnings, msg)
			continue
		}

		item := ranking.Item{
			ID:          ranking.ParseItemID(rec.fields[columns[FieldID]]),
			Title:       rec.fields[columns[FieldTitle]],
			Description: rec.fields[columns[FieldDescription]],
			ImageURL:    rec.fields[columns[FieldImageURL]],
		}
		if line, dup := firstSeen[item.ID]; dup {
			return ImportResult{}, &ImportFormatError{
				Line: rec.line,
				Msg:  fmt.Sprintf("duplicate id %q (first seen on line %d)", item.ID.String(), line),
			}
		}
		firstSeen[item.ID] = rec.line
		result.Items = append(result.Items, item)
	}

	result.Insufficient = len(result.Items) < 2
	return result, nil
}

type record struct {
	line   int
	fields []string
}

// readAll splits data into records. Rows that fail to parse come back as
// warnings; the header failing to parse, or a quote still open at the end
// of data, is an ImportFormatError.
func readAll(data []byte) ([]record, []string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	var (
		records  []record
		warnings []string
	)
	for {
		start := cr.InputOffset()
		fields, err := cr.Read()
		if err == io.EOF {
			return records, warnings, nil
		}
		if err == nil {
			line, _ := cr.FieldPos(0)
			records = append(records, record{line: line, fields: fields})
			continue
		}

		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return nil, nil, &ReadError{Err: err}
		}
		raw := data[start:cr.InputOffset()]

		if len(records) == 0 {
			return nil, nil, &ImportFormatError{Line: parseErr.StartLine, Msg: parseErr.Err.Error()}
		}
		switch {
		case errors.Is(parseErr.Err, csv.ErrBareQuote):
			if fields, ok := readLenient(raw); ok {
				records = append(records, record{line: parseErr.StartLine, fields: fields})
				continue
			}
		case cr.InputOffset() >= int64(len(data)) && bytes.Count(raw, []byte{'"'})%2 == 1:
			return nil, nil, &ImportFormatError{Line: parseErr.StartLine, Msg: "quoted field is never closed"}
		}

		slog.Warn("skipping unparseable row", "line", parseErr.StartLine, "error", parseErr.Err)
		warnings = append(warnings, fmt.Sprintf("line %d: %v; row skipped", parseErr.StartLine, parseErr.Err))
	}
}

// readLenient parses raw as exactly one record, taking stray quotes
// literally.
func readLenient(raw []byte) ([]string, bool) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	fields, err := cr.Read()
	if err != nil {
		return nil, false
	}
	if _, err := cr.Read(); err != io.EOF {
		return nil, false
	}
	return fields, true
}

// indexHeader maps required field names to column positions.
func indexHeader(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	return columns, missing
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
