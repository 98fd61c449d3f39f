package roster

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A roster entry is "<name> (<wbf id>)", optionally followed by a role in
// team rosters. Names allow Latin-1 letters, spaces, hyphens, apostrophes
// and periods.
var (
	teamEntryPattern = regexp.MustCompile(`(?i)([A-Za-z\x{00C0}-\x{00FF}\s\-'.]+)\s*\((\d+)\)\s*(captain|coach|npc)?`)
	pairEntryPattern = regexp.MustCompile(`([A-Za-z\x{00C0}-\x{00FF}\s\-'.]+)\s*\((\d+)\)`)
)

// ParsePlayers extracts players from a stripped roster cell in order of first
// appearance. U+00A0 counts as a space. A WBF ID seen earlier in the same cell is skipped, which folds a
// player listed under two roles into one entry.
func ParsePlayers(text string, mode Mode) []Player {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	pattern := pairEntryPattern
	if mode == ModeTeams {
		pattern = teamEntryPattern
	}

	var players []Player
	seen := make(map[string]struct{})
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		wbfID := m[2]
		if _, dup := seen[wbfID]; dup {
			continue
		}
		seen[wbfID] = struct{}{}

		fullName := strings.TrimSpace(m[1])
		p := Player{
			FullName: fullName,
			Surname:  Surname(fullName),
			WBFID:    wbfID,
		}
		if mode == ModeTeams && len(m) > 3 {
			p.Role = Role(strings.ToLower(m[3]))
		}
		players = append(players, p)
	}
	return players
}

// Surname picks the first all-caps token longer than one character, falling
// back to the last token, and returns it upper-cased.
func Surname(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	upper := cases.Upper(language.Und)
	surname := parts[len(parts)-1]
	for _, p := range parts {
		if utf8.RuneCountInString(p) > 1 && upper.String(p) == p {
			surname = p
			break
		}
	}
	return upper.String(surname)
}
