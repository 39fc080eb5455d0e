// Package validate implements the form validation rules for event and
// participant drafts. Validators are pure: they return a map from field name
// to a human-readable message for every field that fails its rule, and an
// empty map means the draft is valid.
package validate

import (
	"regexp"
	"strings"

	"github.com/hisbu/events-app/internal/model"
)

// emailPattern requires one "@", at least one "." in the domain, and no
// whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Event checks an event draft. Name, location, and description must be
// non-empty after trimming; date and time must be present; maxParticipants
// must be greater than zero.
func Event(d model.EventDraft) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Nama event wajib diisi"
	}
	if d.Date == "" {
		errs["date"] = "Tanggal wajib diisi"
	}
	if d.Time == "" {
		errs["time"] = "Waktu wajib diisi"
	}
	if strings.TrimSpace(d.Location) == "" {
		errs["location"] = "Lokasi wajib diisi"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "Deskripsi wajib diisi"
	}
	if d.MaxParticipants <= 0 {
		errs["maxParticipants"] = "Jumlah peserta harus lebih dari 0"
	}

	return errs
}

// Participant checks a participant draft. Affiliation is required only when
// the draft declares it represents an institution.
func Participant(d model.ParticipantDraft) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Nama peserta wajib diisi"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email wajib diisi"
	} else if !emailPattern.MatchString(d.Email) {
		errs["email"] = "Format email tidak valid"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs["phone"] = "No. telepon wajib diisi"
	}
	if d.RepresentsInstitution && strings.TrimSpace(d.Affiliation) == "" {
		errs["affiliation"] = "Asosiasi/Institusi wajib diisi jika dipilih"
	}

	return errs
}

// EventField re-checks a single field of an event draft, so a client can
// clear one field's error on edit without re-validating the others.
// It returns the empty string when the field passes.
func EventField(d model.EventDraft, field string) string {
	return Event(d)[field]
}

// ParticipantField re-checks a single field of a participant draft.
func ParticipantField(d model.ParticipantDraft, field string) string {
	return Participant(d)[field]
}

// ValidEmail reports whether s is an acceptable email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
