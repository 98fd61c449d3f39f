package cards

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const pdfExt = ".pdf"

// SanitizeName folds accents, drops everything outside [A-Za-z0-9_] and
// upper-cases the result: "Müller-Weiß" becomes "MULLERWEI".
func SanitizeName(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CardFileName sanitizes the stem of name and forces a .pdf extension.
func CardFileName(name string) string {
	stem := strings.TrimSpace(name)
	if ext := path.Ext(stem); strings.EqualFold(ext, pdfExt) {
		stem = strings.TrimSuffix(stem, ext)
	}
	stem = SanitizeName(stem)
	if stem == "" {
		return ""
	}
	return stem + pdfExt
}
