package roster

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOMScanner parses the document with an HTML5 parser instead of scanning
// tags. Unlike RegexScanner it decodes every entity, numeric ones included,
// and repairs unterminated rows the way a browser would.
type DOMScanner struct{}

// Scan implements Scanner. The document is parsed once for both rows and
// the label flag.
func (DOMScanner) Scan(html string) Table {
	doc, ok := parseDocument(html)
	if !ok {
		return Table{}
	}
	return Table{Rows: domRows(doc), HasIDLabel: domHasIDLabel(doc)}
}

// Rows returns the <td> texts of every row.
func (DOMScanner) Rows(html string) [][]string {
	doc, ok := parseDocument(html)
	if !ok {
		return nil
	}
	return domRows(doc)
}

// HasIDLabel reports whether any <th> or <td> reads "ID".
func (DOMScanner) HasIDLabel(html string) bool {
	doc, ok := parseDocument(html)
	if !ok {
		return false
	}
	return domHasIDLabel(doc)
}

func domRows(doc *goquery.Document) [][]string {
	var rows [][]string
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0, 4)
		tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		rows = append(rows, cells)
	})
	return rows
}

func domHasIDLabel(doc *goquery.Document) bool {
	found := false
	doc.Find("th, td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(cellText(s), "ID") {
			found = true
			return false
		}
		return true
	})
	return found
}

// parseDocument wraps bare row fragments in a table; the HTML5 parser drops
// <tr> and <td> tags that appear outside one.
func parseDocument(html string) (*goquery.Document, bool) {
	if !strings.Contains(strings.ToLower(html), "<table") {
		html = "<table>" + html + "</table>"
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return doc, true
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(strings.ReplaceAll(s.Text(), "\u00a0", " "))
}
