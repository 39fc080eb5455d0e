// Package model defines the core domain types for the event scheduler.
package model

// Event categories shown in the category filter and the event form.
const (
	CategoryWorkshop   = "Workshop"
	CategorySeminar    = "Seminar"
	CategoryTraining   = "Training"
	CategoryKonferensi = "Konferensi"
	CategoryMeetup     = "Meetup"

	// CategoryAll is the filter wildcard matching every category.
	CategoryAll = "Semua"
)

// Categories lists the selectable event categories in display order.
var Categories = []string{
	CategoryWorkshop,
	CategorySeminar,
	CategoryTraining,
	CategoryKonferensi,
	CategoryMeetup,
}

// Attendance types for participants.
const (
	AttendanceOffline = "offline"
	AttendanceOnline  = "online"
	AttendanceHybrid  = "hybrid"
)

// Event represents a scheduled activity with a capacity and a roster of
// participants. The JSON field names match the persisted collection format.
type Event struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Category        string        `json:"category"`
	Location        string        `json:"location"`
	Description     string        `json:"description"`
	MaxParticipants int           `json:"maxParticipants"`
	Participants    []Participant `json:"participants"`
}

// Remaining returns the number of available seats. It can go negative when
// an event is overbooked, since capacity is advisory at the data layer.
func (e *Event) Remaining() int {
	return e.MaxParticipants - len(e.Participants)
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return len(e.Participants) >= e.MaxParticipants
}

// Participant represents a person registered to an event.
type Participant struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Affiliation    string `json:"affiliation,omitempty"`
	AttendanceType string `json:"attendanceType,omitempty"`
}

// EventDraft is the unvalidated form payload for creating or editing an event.
type EventDraft struct {
	Name            string `json:"name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Category        string `json:"category"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	MaxParticipants int    `json:"maxParticipants"`
}

// ParticipantDraft is the unvalidated form payload for registering a
// participant. Affiliation is only kept when RepresentsInstitution is set.
type ParticipantDraft struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	RepresentsInstitution bool   `json:"representsInstitution"`
	Affiliation           string `json:"affiliation"`
	AttendanceType        string `json:"attendanceType"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse carries per-field validation messages.
type FieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
