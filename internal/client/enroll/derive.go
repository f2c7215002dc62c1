package enroll

import (
	"sort"

	"mergington/internal/client/api"
)

// Row is the derived per-activity state for one viewer. It is recomputed
// from the latest catalog snapshot on every render and never stored.
type Row struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
	SpotsLeft       int
	Full            bool
	CanJoin         bool
	CanLeave        bool
}

// SpotsLeft is capacity minus current membership. A malformed snapshot where
// membership exceeds capacity yields a negative value; eligibility checks
// treat that the same as full.
func SpotsLeft(a api.Activity) int {
	return a.MaxParticipants - len(a.Participants)
}

// Full reports whether the activity has no headroom.
func Full(a api.Activity) bool {
	return len(a.Participants) >= a.MaxParticipants
}

// isParticipant reports whether email is enrolled in the activity.
func isParticipant(a api.Activity, email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// CanJoin reports whether the viewer may be offered a join control.
// Students only, not already enrolled, and headroom remaining.
func CanJoin(id api.Identity, a api.Activity) bool {
	if id.Role != "student" {
		return false
	}
	if isParticipant(a, id.Email) {
		return false
	}
	return !Full(a)
}

// CanLeave reports whether the viewer may be offered a leave control.
func CanLeave(id api.Identity, a api.Activity) bool {
	return isParticipant(a, id.Email)
}

// DeriveRows computes the per-activity view state for one viewer from a
// catalog snapshot, ordered by activity name.
func DeriveRows(id api.Identity, catalog api.Catalog) []Row {
	rows := make([]Row, 0, len(catalog))
	for name, a := range catalog {
		rows = append(rows, Row{
			Name:            name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
			SpotsLeft:       SpotsLeft(a),
			Full:            Full(a),
			CanJoin:         CanJoin(id, a),
			CanLeave:        CanLeave(id, a),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
