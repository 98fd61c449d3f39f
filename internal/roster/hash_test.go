package roster

import "testing"

func TestDeriveIDMatchesPersistedValues(t *testing.T) {
	cases := []struct {
		event, name string
		want        string
	}{
		{"Open", "Alpha Team", "1526555057"},
		{"Open", "Beta Team", "16900969"},
		{"Women", "Alpha Team", "1107372669"},
		{"Winter Open Teams", "ROSSI", "909569669"},
		{"", "", "0"},
	}
	for _, tc := range cases {
		if got := DeriveID(tc.event, tc.name); got != tc.want {
			t.Fatalf("DeriveID(%q, %q) = %s, want %s", tc.event, tc.name, got, tc.want)
		}
	}
}

func TestDeriveIDIgnoresCaseAndPunctuation(t *testing.T) {
	a := DeriveID("Open", "Alpha Team")
	b := DeriveID("OPEN", "alpha-team!")
	if a != b {
		t.Fatalf("expected normalized inputs to hash equally, got %s and %s", a, b)
	}
}

func TestDeriveIDIsStable(t *testing.T) {
	first := DeriveID("Open", "Alpha Team")
	for i := 0; i < 5; i++ {
		if got := DeriveID("Open", "Alpha Team"); got != first {
			t.Fatalf("expected stable id %s, got %s", first, got)
		}
	}
	if DeriveID("Open", "Alpha Teams") == first {
		t.Fatalf("expected a different name to change the id")
	}
}

func TestDeriveIDSkipsNonASCIILetters(t *testing.T) {
	if DeriveID("Open", "Zürich") != DeriveID("Open", "Zrich") {
		t.Fatalf("expected non-ascii letters to be stripped before hashing")
	}
}

func TestDeriveIDWidensMinInt32(t *testing.T) {
	// "polygenelubricants" hashes to math.MinInt32.
	if got := DeriveID("polygene", "lubricants"); got != "2147483648" {
		t.Fatalf("expected 2147483648, got %s", got)
	}
}
