package roster

// row is a data row mapped onto entity columns.
type row struct {
	id     string
	event  string
	name   string
	roster string
}

var headerNames = map[string]struct{}{
	"Team Name": {},
	"Pair Name": {},
	"Pair":      {},
	"Team":      {},
}

// classifyRow maps cells to columns according to shape and rejects rows that
// are too short, unnamed, or repeat the table header.
//
//	HasIDColumn: event | id | name | roster
//	NoIDColumn:  event | name | roster      (id derived from event and name)
func classifyRow(cells []string, shape Shape) (row, bool) {
	var r row
	switch shape {
	case HasIDColumn:
		if len(cells) < 4 {
			return row{}, false
		}
		r = row{event: cells[0], id: cells[1], name: cells[2], roster: cells[3]}
	default:
		if len(cells) < 3 {
			return row{}, false
		}
		r = row{event: cells[0], name: cells[1], roster: cells[2]}
	}

	if r.name == "" || r.event == "Event" {
		return row{}, false
	}
	if _, header := headerNames[r.name]; header {
		return row{}, false
	}
	if r.id == "" {
		r.id = DeriveID(r.event, r.name)
	}
	return r, true
}
