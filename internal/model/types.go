package model

type User struct {
	ID       string
	Name     string
	Email    string
	MotherID string
}

// StatusMeta carries the structured status variant newer backend versions
// return instead of a plain status string.
type StatusMeta struct {
	Code   string
	Label  string
	Badge  string
	Tone   string
	Source string
}

type InferenceResult struct {
	Status         string
	StatusMeta     *StatusMeta
	Recommendation string
	Energy         float64
	Protein        float64
	Fluid          float64
	UpdatedAt      string
}

type MotherProfile struct {
	ID            string
	Name          string
	Email         string
	BB            float64
	TB            float64
	Umur          float64
	UsiaBayiBulan float64
	LaktasiTipe   string
	Aktivitas     string
	Alergi        []string
	Preferensi    []string
	Riwayat       []string
}

type Consultation struct {
	ID        string
	MotherID  string
	PakarID   string
	Status    string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

type ConsultationMessage struct {
	ID            string
	Sender        string
	Text          string
	CreatedAt     string
	HumanizedTime string
}

type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      string
	CreatedAt string
}

// NotificationID lets a Notification be passed wherever a bare identifier is
// accepted, e.g. notify.Synchronizer.MarkAsRead.
func (n Notification) NotificationID() string { return n.ID }

type AttendanceStatus string

const (
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceDeclined  AttendanceStatus = "declined"
)

type Schedule struct {
	ID          string
	Title       string
	Description string
	ScheduledAt string
	Attendance  AttendanceStatus
}
