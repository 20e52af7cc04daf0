package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrMissingHeader   = errors.New("missing header row")
)

// Row is one parsed CSV row keyed by header name
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty reports whether the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// CSVReader parses UTF-8 CSV files with a header row
type CSVReader struct {
	reader  *csv.Reader
	headers []string
	line    int
}

// NewCSVReader wraps a reader, stripping a UTF-8 BOM if present and
// rejecting non-UTF-8 content up front.
func NewCSVReader(r io.Reader) (*CSVReader, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	sample, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(sample) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(sample) {
		return nil, ErrInvalidEncoding
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	return &CSVReader{reader: cr}, nil
}

// ParseHeader reads the header row
func (c *CSVReader) ParseHeader() error {
	record, err := c.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	c.headers = make([]string, len(record))
	for i, h := range record {
		c.headers[i] = strings.TrimSpace(h)
	}
	c.line = 1
	return nil
}

// MissingHeaders returns the required headers not present in the file
func (c *CSVReader) MissingHeaders(required []string) []string {
	present := make(map[string]bool, len(c.headers))
	for _, h := range c.headers {
		present[h] = true
	}
	var missing []string
	for _, h := range required {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

// ReadAll reads the remaining rows, skipping fully empty ones
func (c *CSVReader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		record, err := c.reader.Read()
		if err == io.EOF {
			break
		}
		c.line++
		if err != nil {
			return rows, fmt.Errorf("error reading row %d: %w", c.line, err)
		}

		row := &Row{
			LineNumber: c.line,
			Data:       make(map[string]string, len(c.headers)),
		}
		for i, header := range c.headers {
			if i < len(record) {
				row.Data[header] = strings.TrimSpace(record[i])
			} else {
				row.Data[header] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
