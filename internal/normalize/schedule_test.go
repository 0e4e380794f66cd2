package normalize

import (
	"testing"

	"github.com/ibnfzy/gizichain/internal/model"
)

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	got := ParseSchedule(decode(t, `{
		"id": 3,
		"title": "Posyandu Melati",
		"description": "Penimbangan dan imunisasi",
		"scheduled_at": "2026-03-01T09:00:00Z",
		"attendance": "CONFIRMED"
	}`))
	if got == nil {
		t.Fatal("expected schedule")
	}
	if got.ID != "3" || got.Title != "Posyandu Melati" || got.Attendance != model.AttendanceConfirmed {
		t.Fatalf("unexpected schedule: %+v", got)
	}
}

func TestParseAttendanceClosedSet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want model.AttendanceStatus
	}{
		{"confirmed", model.AttendanceConfirmed},
		{"declined", model.AttendanceDeclined},
		{" Declined ", model.AttendanceDeclined},
		{"present", ""},
		{nil, ""},
		{5.0, ""},
	}
	for _, tc := range cases {
		if got := ParseAttendance(tc.in); got != tc.want {
			t.Errorf("ParseAttendance(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
