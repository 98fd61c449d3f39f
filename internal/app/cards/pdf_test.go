package cards

import (
	"bytes"
	"errors"
	"testing"

	"github.com/francescacanali/ebl-wbf-system-cards/internal/testutil"
)

func TestValidatePDF(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"valid", testutil.MinimalPDF, nil},
		{"too small", "%PDF", ErrPDFTooSmall},
		{"wrong magic", "<html>not a pdf</html>", ErrNotPDF},
		{"javascript", "%PDF-1.4\n<< /S /JavaScript /JS (app.alert(1)) >>", ErrSuspiciousPDF},
		{"js action lower case", "%PDF-1.4\n<< /js (x) >>", ErrSuspiciousPDF},
		{"launch", "%PDF-1.4\n<< /S /Launch /F (cmd.exe) >>", ErrSuspiciousPDF},
		{"embedded file", "%PDF-1.4\n<< /Type /EmbeddedFile >>", ErrSuspiciousPDF},
		{"JSON keyword is fine", "%PDF-1.4\n<< /JSON 1 >>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePDF([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("ValidatePDF() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidatePDFOnlyScansLeadingWindow(t *testing.T) {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte(" "), scanWindow)...)
	data = append(data, []byte("/JavaScript")...)
	if err := ValidatePDF(data); err != nil {
		t.Fatalf("expected marker past the scan window to be ignored, got %v", err)
	}
}

func TestInspectPDF(t *testing.T) {
	if pages := InspectPDF([]byte(testutil.MinimalPDF)); pages != 1 {
		t.Fatalf("expected 1 page, got %d", pages)
	}
	if pages := InspectPDF([]byte("%PDF-1.4\ngarbage")); pages != 0 {
		t.Fatalf("expected 0 pages for unreadable pdf, got %d", pages)
	}
}
