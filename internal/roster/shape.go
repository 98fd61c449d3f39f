package roster

// Shape records whether a table carries an explicit identifier column before
// the name and roster columns.
type Shape int

const (
	NoIDColumn Shape = iota
	HasIDColumn
)

func (s Shape) String() string {
	if s == HasIDColumn {
		return "id-column"
	}
	return "no-id-column"
}

// detectShape decides the table shape once per document. An "ID" label wins;
// otherwise the second cell of the first row with at least two cells must be
// all digits. Anything else means no ID column.
func detectShape(hasIDLabel bool, rows [][]string) Shape {
	if hasIDLabel {
		return HasIDColumn
	}
	for _, cells := range rows {
		if len(cells) < 2 {
			continue
		}
		if isDigits(cells[1]) {
			return HasIDColumn
		}
		return NoIDColumn
	}
	return NoIDColumn
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
