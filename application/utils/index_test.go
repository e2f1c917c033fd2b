package utils

import (
	"testing"
	"time"
)

func TestNormalizeSubjectName(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"trims surrounding whitespace", "  Mathematics ", "Mathematics"},
		{"keeps inner spacing", "Computer  Science", "Computer  Science"},
		{"keeps case", "PHYSICS", "PHYSICS"},
		{"empty stays empty", "   ", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeSubjectName(test.subject); got != test.want {
				t.Errorf("NormalizeSubjectName(%q) = %q, want %q", test.subject, got, test.want)
			}
		})
	}
}

func TestStartOfUTCDay(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"truncates time of day",
			time.Date(2025, 3, 10, 14, 45, 12, 999, time.UTC),
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"local time resolves to its UTC day",
			time.Date(2025, 3, 10, 0, 30, 0, 0, lagos),
			time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"midnight is a fixed point",
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := StartOfUTCDay(test.in); !got.Equal(test.want) {
				t.Errorf("StartOfUTCDay(%v) = %v, want %v", test.in, got, test.want)
			}
		})
	}
}

func TestGenerateULIDStringIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateULIDString()
		if len(id) != 26 {
			t.Fatalf("expected 26 character ulid, got %q", id)
		}
		if seen[id] {
			t.Fatalf("ulid %q generated twice", id)
		}
		seen[id] = true
	}
}
