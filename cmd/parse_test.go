package cmd

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input             string
		start, stop, step int
		wantErr           bool
	}{
		{input: "0:10", start: 0, stop: 10, step: 1},
		{input: "5:23:3", start: 5, stop: 23, step: 3},
		{input: " 2 : 4 ", start: 2, stop: 4, step: 1},
		{input: "10", wantErr: true},
		{input: "1:2:3:4", wantErr: true},
		{input: "a:b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, stop, step, err := parseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseRange(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRange(%q) unexpected error: %v", tt.input, err)
			}
			if start != tt.start || stop != tt.stop || step != tt.step {
				t.Errorf("parseRange(%q) = %d, %d, %d; want %d, %d, %d", tt.input, start, stop, step, tt.start, tt.stop, tt.step)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-01")
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseDate(date only) = %v, %v", got, err)
	}

	got, err = parseDate("2024-03-01T12:30")
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("parseDate(date and time) = %v, %v", got, err)
	}

	if _, err := parseDate("yesterday"); err == nil {
		t.Errorf("parseDate expected error")
	}
}

func TestParseID(t *testing.T) {
	for _, s := range []string{"0", "-1", "abc", ""} {
		if _, err := parseID(s); err == nil {
			t.Errorf("parseID(%q) expected error", s)
		}
	}
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}
}

func TestParseRating(t *testing.T) {
	if r, err := parseRating(""); err != nil || r != "" {
		t.Errorf("empty rating = %q, %v", r, err)
	}
	if r, err := parseRating("explicit"); err != nil || r != "e" {
		t.Errorf("parseRating(explicit) = %q, %v", r, err)
	}
	if _, err := parseRating("nsfw"); err == nil {
		t.Errorf("parseRating(nsfw) expected error")
	}
}
