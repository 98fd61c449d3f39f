package roster

import (
	"regexp"
	"strings"
)

// Scanner turns loosely formed table markup into rows of cell text.
// Implementations must be safe for concurrent use.
type Scanner interface {
	// Scan reads html once and returns its rows and ID label flag.
	Scan(html string) Table
}

// Table is the scanned form of a document.
type Table struct {
	// Rows holds every table row as its stripped <td> texts, in document order.
	Rows [][]string
	// HasIDLabel reports whether any header or data cell reads "ID" once
	// markup is stripped, ignoring case.
	HasIDLabel bool
}

var (
	rowPattern     = regexp.MustCompile(`(?is)<tr[^>]*>(.*?)</tr>`)
	cellPattern    = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)
	labelPattern   = regexp.MustCompile(`(?is)<t[hd][^>]*>(.*?)</t[hd]>`)
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	numericEntity  = regexp.MustCompile(`&#\d+;`)
)

// RegexScanner is a tolerant tag scanner. It does not build a DOM, so
// unterminated rows and cells are skipped rather than repaired.
type RegexScanner struct{}

// Scan implements Scanner.
func (sc RegexScanner) Scan(html string) Table {
	return Table{Rows: sc.Rows(html), HasIDLabel: sc.HasIDLabel(html)}
}

// Rows returns the stripped <td> texts of every row.
func (RegexScanner) Rows(html string) [][]string {
	matches := rowPattern.FindAllStringSubmatch(html, -1)
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, scanCells(m[1]))
	}
	return rows
}

// HasIDLabel reports whether any <th> or <td> reads "ID" after stripping.
func (RegexScanner) HasIDLabel(html string) bool {
	for _, m := range labelPattern.FindAllStringSubmatch(html, -1) {
		if strings.EqualFold(StripHTML(m[1]), "ID") {
			return true
		}
	}
	return false
}

func scanCells(row string) []string {
	matches := cellPattern.FindAllStringSubmatch(row, -1)
	cells := make([]string, 0, len(matches))
	for _, m := range matches {
		cells = append(cells, StripHTML(m[1]))
	}
	return cells
}

// StripHTML removes markup and decodes the few entities registration exports
// use. Numeric character references are dropped, not decoded. U+00A0 is
// treated as a plain space.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = numericEntity.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
