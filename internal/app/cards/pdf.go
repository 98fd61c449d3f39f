package cards

import (
	"bytes"
	"errors"
	"regexp"

	"github.com/ledongthuc/pdf"
)

const scanWindow = 50000

var (
	ErrPDFTooSmall   = errors.New("file too small")
	ErrNotPDF        = errors.New("invalid PDF file")
	ErrSuspiciousPDF = errors.New("PDF contains suspicious content")
)

var pdfMagic = []byte("%PDF-")

// Active content markers rejected in uploaded cards.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/JavaScript`),
	regexp.MustCompile(`(?i)/JS\s`),
	regexp.MustCompile(`(?i)/Launch`),
	regexp.MustCompile(`(?i)/EmbeddedFile`),
}

// ValidatePDF checks the header and scans the first 50000 bytes for active
// content.
func ValidatePDF(data []byte) error {
	if len(data) < len(pdfMagic) {
		return ErrPDFTooSmall
	}
	if !bytes.Equal(data[:len(pdfMagic)], pdfMagic) {
		return ErrNotPDF
	}
	head := data
	if len(head) > scanWindow {
		head = head[:scanWindow]
	}
	for _, p := range suspiciousPatterns {
		if p.Match(head) {
			return ErrSuspiciousPDF
		}
	}
	return nil
}

// InspectPDF returns the page count of data, or 0 when the document
// structure cannot be read.
func InspectPDF(data []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return r.NumPage()
}
