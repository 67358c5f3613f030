// Package codec implements the comma-separated text format the deck is
// ingested from and exported to: no header row, two columns (prompt,
// response), optional double-quote quoting with doubled-quote escaping.
// All functions are pure and never return errors; malformed input degrades
// to empty fields instead of failing.
package codec

import (
	"strings"

	"cardbox/internal/deck"
)

// Pair is one parsed row: a prompt and its response.
type Pair struct {
	Prompt   string
	Response string
}

// TokenizeLine splits one line into fields. A quote toggles the in-quotes
// flag; a doubled quote inside quotes emits a literal quote; a comma splits
// fields only outside quotes. The final field is always emitted, and an
// unterminated quote at end of line is tolerated.
func TokenizeLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	fields = append(fields, cur.String())
	return fields
}

// ParseDocument parses a whole document into ordered (prompt, response)
// pairs. Lines are split on bare or carriage-return-prefixed line breaks,
// trimmed, and skipped when blank. Field 0 is the prompt, field 1 the
// response; a missing field becomes the empty string and columns beyond the
// second are ignored. A row whose fields are both empty after trimming is
// dropped. Rows are independent: a malformed row never fails the document.
func ParseDocument(text string) []Pair {
	var pairs []Pair

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := TokenizeLine(line)
		prompt := strings.TrimSpace(fields[0])
		response := ""
		if len(fields) > 1 {
			response = strings.TrimSpace(fields[1])
		}

		if prompt == "" && response == "" {
			continue
		}
		pairs = append(pairs, Pair{Prompt: prompt, Response: response})
	}

	return pairs
}

// Serialize renders entries back to the delimited format. A separator
// becomes a single-field row "#"+title; a card becomes "prompt,response".
// Rows are joined with a single line break, no trailing break.
//
// Note the deliberate asymmetry: ParseDocument reads a serialized separator
// row back as a card whose prompt is "#"+title. The round trip is exact for
// card rows only.
func Serialize(entries []deck.Entry) string {
	rows := make([]string, 0, len(entries))

	for _, e := range entries {
		switch e.Kind {
		case deck.KindSeparator:
			rows = append(rows, QuoteField("#"+e.Title))
		case deck.KindCard:
			rows = append(rows, QuoteField(e.Prompt)+","+QuoteField(e.Response))
		}
	}

	return strings.Join(rows, "\n")
}

// QuoteField wraps a field in quotes, doubling internal quotes, if and only
// if it contains a comma, a quote, or a line break. Otherwise the field is
// returned as is.
func QuoteField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
