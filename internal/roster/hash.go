package roster

import (
	"strconv"
	"strings"
)

// DeriveID builds a stable identifier for rows that carry no ID column.
// The arithmetic is a 32-bit signed running hash (h = h*31 + c) over the
// lower-cased, alphanumeric-only "event_name" string. Previously uploaded
// files reference these values, so the algorithm must not change.
func DeriveID(event, name string) string {
	var h int32
	for _, c := range normalizeKey(event + "_" + name) {
		h = (h << 5) - h + int32(c)
	}
	// Widen before negating so math.MinInt32 maps to 2147483648.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 10)
}

func normalizeKey(s string) string {
	lowered := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lowered))
	for i := 0; i < len(lowered); i++ {
		c := lowered[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
