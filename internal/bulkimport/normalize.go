package bulkimport

import "strings"

// NormalizeHeader canonicalizes one header cell: trim, lowercase, and
// collapse internal whitespace runs to single underscores. Normalizing
// an already-normalized header is a no-op.
func NormalizeHeader(h string) string {
	fields := strings.Fields(strings.ToLower(h))
	return strings.Join(fields, "_")
}

// NormalizeHeaders canonicalizes a full header row.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// Row is one data row keyed by normalized header name, with its 1-based
// line number among the data rows (the header row is excluded).
type Row struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed value for a normalized header name, or the
// empty string when the column is absent or the cell is missing.
func (r Row) Get(key string) string {
	return r.Values[key]
}

// RecordRows pairs each data row with the normalized headers. Cells are
// trimmed; short rows yield empty strings for the trailing columns.
// Columns beyond the header width are ignored.
func RecordRows(headers []string, rows [][]string) []Row {
	norm := NormalizeHeaders(headers)
	out := make([]Row, 0, len(rows))
	for i, raw := range rows {
		values := make(map[string]string, len(norm))
		for j, h := range norm {
			if j < len(raw) {
				values[h] = strings.TrimSpace(raw[j])
			} else {
				values[h] = ""
			}
		}
		out = append(out, Row{Line: i + 1, Values: values})
	}
	return out
}
