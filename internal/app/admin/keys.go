package admin

import (
	"fmt"
	"strings"
)

// DataKey returns the object key of the admin document for an event.
func DataKey(tournament, event string) string {
	return fmt.Sprintf("%s/admin/%s.json", tournament, escapeComponent(event))
}

// escapeComponent percent-encodes s the way browsers encode a URI component,
// so keys written by existing clients keep resolving.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
