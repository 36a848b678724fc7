package dateutil

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{name: "iso passes through", value: "2024-03-15", want: "2024-03-15", ok: true},
		{name: "german dotted", value: "15.03.2024", want: "2024-03-15", ok: true},
		{name: "european slashed", value: "15/03/2024", want: "2024-03-15", ok: true},
		{name: "iso slashed", value: "2024/03/15", want: "2024-03-15", ok: true},
		{name: "european dashed", value: "15-03-2024", want: "2024-03-15", ok: true},
		{name: "free text not recognized", value: "Q1 2024", ok: false},
		{name: "partial date not recognized", value: "2024-03", ok: false},
		{name: "empty not recognized", value: "", ok: false},
		{name: "nonsense not recognized", value: "not a date", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Normalize(tt.value)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeShape(t *testing.T) {
	t.Parallel()

	// Every normalized date is exactly 10 characters with two hyphens.
	inputs := []string{"2024-03-15", "01.01.2000", "31/12/1999", "2030/06/07", "09-08-2021"}
	for _, in := range inputs {
		got, ok := Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) unexpectedly failed", in)
		}
		if len(got) != 10 || got[4] != '-' || got[7] != '-' {
			t.Errorf("Normalize(%q) = %q, not in YYYY-MM-DD shape", in, got)
		}
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if got := Today(fixed); got != "2024-03-15" {
		t.Errorf("Today() = %q, want %q", got, "2024-03-15")
	}
}
