package normalize

import (
	"strings"

	"github.com/ibnfzy/gizichain/internal/model"
)

// ParseAttendance maps a raw attendance value onto the closed status set.
// Unknown values are treated as unset.
func ParseAttendance(raw any) model.AttendanceStatus {
	s, _ := raw.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(model.AttendanceConfirmed):
		return model.AttendanceConfirmed
	case string(model.AttendanceDeclined):
		return model.AttendanceDeclined
	default:
		return ""
	}
}

// ParseSchedule builds a Schedule. Returns nil when the payload is not an
// object or carries no usable id.
func ParseSchedule(raw any) *model.Schedule {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	id := firstID(m, "id", "schedule_id")
	if id == "" {
		return nil
	}
	return &model.Schedule{
		ID:          id,
		Title:       firstString(m, "title", "judul"),
		Description: firstString(m, "description", "deskripsi"),
		ScheduledAt: firstString(m, "scheduledAt", "scheduled_at", "tanggal"),
		Attendance:  ParseAttendance(m["attendance"]),
	}
}
