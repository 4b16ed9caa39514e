package snowtype

import (
	"errors"
	"testing"
	"time"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
		err  bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"false", false, false},
		{"FALSE", false, false},
		{"yes", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, err := ParseBool(tt.raw)
		if tt.err {
			if err == nil {
				t.Errorf("ParseBool(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseBool(%q) = %v, %v, want %v", tt.raw, got, err, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30:00.250", time.Date(2024, 1, 15, 10, 30, 0, 250_000_000, time.UTC)},
		{"1705314600", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"1705314600.500000000", time.Date(2024, 1, 15, 10, 30, 0, 500_000_000, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.raw)
		if err != nil {
			t.Errorf("ParseTime(%q) error: %v", tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := ParseTime("not a time"); err == nil {
		t.Error("ParseTime(garbage) expected error")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-15")
	if err != nil || !got.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(2024-01-15) = %v, %v", got, err)
	}

	// Epoch form truncates to midnight UTC.
	got, err = ParseDate("1705314600")
	if err != nil || !got.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(epoch) = %v, %v", got, err)
	}

	if _, err := ParseDate("nope"); err == nil {
		t.Error("ParseDate(garbage) expected error")
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("1234.5600")
	if err != nil {
		t.Fatalf("ParseDecimal error: %v", err)
	}
	if d.String() != "1234.56" {
		t.Errorf("ParseDecimal = %s, want 1234.56", d)
	}
	if _, err := ParseDecimal("12,34"); err == nil {
		t.Error("ParseDecimal(12,34) expected error")
	}
}

func TestJSONDelegate(t *testing.T) {
	type metrics struct {
		Calories int    `json:"calories"`
		Unit     string `json:"unit"`
	}

	got, err := JSON[metrics](`{"calories": 300, "unit": "kcal"}`)
	if err != nil {
		t.Fatalf("JSON error: %v", err)
	}
	if got.Calories != 300 || got.Unit != "kcal" {
		t.Errorf("JSON = %+v", got)
	}

	_, err = JSON[metrics](`{"calories": "many"}`)
	if err == nil {
		t.Fatal("expected error for mistyped payload")
	}
	var de *DelegateError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DelegateError", err)
	}
}
