package coerce

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       any
		fallback float64
		want     float64
	}{
		{"float", 65.5, 0, 65.5},
		{"int", 2200, 0, 2200},
		{"numeric string", "2200", 0, 2200},
		{"comma decimal string", "65,5", 0, 65.5},
		{"padded string", " 75.2 ", 0, 75.2},
		{"garbage string", "abc", 10, 10},
		{"empty string", "", 7, 7},
		{"nil", nil, 3, 3},
		{"bool", true, 1, 1},
		{"json number", json.Number("12.5"), 0, 12.5},
	}
	for _, tc := range cases {
		if got := Number(tc.in, tc.fallback); got != tc.want {
			t.Errorf("%s: Number(%v, %v) = %v, want %v", tc.name, tc.in, tc.fallback, got, tc.want)
		}
	}
}

func TestStringList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"comma string", "a, b ,,c", []string{"a", "b", "c"}},
		{"array", []any{"a", "", "b "}, []string{"a", "b"}},
		{"string slice", []string{" x ", ""}, []string{"x"}},
		{"mixed array", []any{"telur", 5, nil}, []string{"telur", "5"}},
		{"nil", nil, []string{}},
		{"number", 5.0, []string{}},
	}
	for _, tc := range cases {
		if got := StringList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: StringList(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	if got := String("  halo ", ""); got != "halo" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := String("   ", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank string, got %q", got)
	}
	if got := String(42, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for non-string, got %q", got)
	}
}

func TestID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{"m-17", "m-17"},
		{float64(17), "17"},
		{17.5, "17.5"},
		{json.Number("42"), "42"},
		{nil, ""},
		{[]any{}, ""},
	}
	for _, tc := range cases {
		if got := ID(tc.in); got != tc.want {
			t.Errorf("ID(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
