package dataset

import "strings"

const (
	// Delimiter separates fields of every dataset row.
	Delimiter = ','
	quote     = '"'
)

// SplitFields splits one line into trimmed fields. A quote character opens or
// closes a quoted region and is itself dropped; delimiters inside a quoted
// region are kept as literal text. An unterminated region runs to the end of
// the line.
func SplitFields(line string, delim rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == quote:
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}
