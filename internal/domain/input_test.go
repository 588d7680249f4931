package domain

import "testing"

func TestParseLengthInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current int
		want    int
	}{
		{name: "empty means zero", input: "", current: 8, want: 0},
		{name: "blank means zero", input: "  ", current: 8, want: 0},
		{name: "numeric replaces", input: "16", current: 8, want: 16},
		{name: "non-numeric ignored", input: "12a", current: 8, want: 8},
		{name: "letters ignored", input: "abc", current: 3, want: 3},
		{name: "negative passes through", input: "-4", current: 3, want: -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLengthInput(tt.input, tt.current); got != tt.want {
				t.Fatalf("ParseLengthInput(%q, %d) = %d, want %d", tt.input, tt.current, got, tt.want)
			}
		})
	}
}
