package roster

// Extractor runs the roster pipeline with a chosen Scanner. The zero value
// uses RegexScanner. An Extractor holds no mutable state and may be shared.
type Extractor struct {
	scanner Scanner
}

// NewExtractor returns an Extractor backed by scanner, or by RegexScanner when
// scanner is nil.
func NewExtractor(scanner Scanner) *Extractor {
	return &Extractor{scanner: scanner}
}

// Extract parses html as a teams or pairs table using the default scanner.
func Extract(html string, mode Mode) []Entity {
	return (&Extractor{}).Extract(html, mode)
}

// Extract converts html into entities in row order. Malformed rows, header
// rows and rosters with fewer than two players are dropped; it never fails.
func (e *Extractor) Extract(html string, mode Mode) []Entity {
	entities, _ := e.ExtractShape(html, mode)
	return entities
}

// ExtractShape is Extract that also reports the table shape it inferred.
func (e *Extractor) ExtractShape(html string, mode Mode) ([]Entity, Shape) {
	entities := []Entity{}
	if !mode.Valid() {
		return entities, NoIDColumn
	}

	table := e.resolveScanner().Scan(html)
	shape := detectShape(table.HasIDLabel, table.Rows)

	for _, cells := range table.Rows {
		r, ok := classifyRow(cells, shape)
		if !ok {
			continue
		}
		players := ParsePlayers(r.roster, mode)
		if len(players) < minPlayers {
			continue
		}
		if mode == ModePairs {
			players = players[:minPlayers]
		}
		entities = append(entities, Entity{
			ID:      r.id,
			Event:   r.event,
			Name:    r.name,
			Players: players,
		})
	}
	return entities, shape
}

// DetectShape reports the table shape the pipeline would infer for html.
func (e *Extractor) DetectShape(html string) Shape {
	table := e.resolveScanner().Scan(html)
	return detectShape(table.HasIDLabel, table.Rows)
}

func (e *Extractor) resolveScanner() Scanner {
	if e == nil || e.scanner == nil {
		return RegexScanner{}
	}
	return e.scanner
}
