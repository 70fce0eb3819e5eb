package reconcile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Delimiter separates fields in the input table.
const Delimiter = ','

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable reads and parses the CSV file at path.
func ReadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseTable(bytes.NewReader(data))
}

// ParseTable parses delimited text whose first line names the fields.
// Every other non-blank line is one row, split on Delimiter; quotes carry
// no meaning. Values are matched to headers by position: missing trailing
// values leave the field out of the row and surplus values are dropped.
// A table without data rows yields ErrEmpty.
func ParseTable(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, ErrEmpty
	}

	header := splitLine(strings.TrimPrefix(scanner.Text(), string(utf8BOM)))
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		values := splitLine(text)
		row := make(Row, len(headers))
		for i := 0; i < len(headers) && i < len(values); i++ {
			row[headers[i]] = strings.TrimSpace(values[i])
		}
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line %d: %w", line+1, err)
	}

	if len(table.Rows) == 0 {
		return nil, ErrEmpty
	}
	return table, nil
}

// WriteTable writes t in the format ParseTable reads, headers first.
// Values are written verbatim, so a value holding Delimiter will not read
// back as one field.
func WriteTable(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(joinLine(t.Headers) + "\n"); err != nil {
		return err
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, h := range t.Headers {
			record[i] = row[h]
		}
		if _, err := bw.WriteString(joinLine(record) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func splitLine(line string) []string {
	return strings.Split(line, string(Delimiter))
}

func joinLine(values []string) string {
	return strings.Join(values, string(Delimiter))
}
