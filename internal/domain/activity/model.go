package activity

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Domain errors
var (
	ErrEmptyName        = errors.New("activity name cannot be empty")
	ErrEmptyDescription = errors.New("activity description cannot be empty")
	ErrInvalidCapacity  = errors.New("max participants must be greater than zero")
	ErrAlreadySignedUp  = errors.New("You are already signed up for this activity")
	ErrFull             = errors.New("Activity is full")
	ErrNotSignedUp      = errors.New("You are not signed up for this activity")
	ErrOverCapacity     = errors.New("participant count exceeds max participants")
	ErrDuplicateSignup  = errors.New("participant list contains duplicates")
	ErrEmptyParticipant = errors.New("participant email cannot be empty")
)

// Activity holds state for one extracurricular activity.
// Participants preserves signup order and never exceeds MaxParticipants.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Validate checks if the Activity has valid data.
// PRE: Activity struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > MaxNameLength {
		return errors.New("activity name cannot exceed 100 characters")
	}
	if strings.TrimSpace(a.Description) == "" {
		return ErrEmptyDescription
	}
	if a.MaxParticipants <= 0 {
		return ErrInvalidCapacity
	}
	if len(a.Participants) > a.MaxParticipants {
		return ErrOverCapacity
	}
	seen := make(map[string]bool, len(a.Participants))
	for _, email := range a.Participants {
		if email == "" {
			return ErrEmptyParticipant
		}
		if seen[email] {
			return ErrDuplicateSignup
		}
		seen[email] = true
	}
	return nil
}

// SpotsLeft returns the remaining capacity.
// INVARIANT: Activity fields are not mutated
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no capacity remains.
// INVARIANT: Activity fields are not mutated
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// HasParticipant returns true if email is enrolled.
// INVARIANT: Activity fields are not mutated
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Signup enrolls email in the activity.
// PRE: email is non-empty
// POST: email appended to Participants, or an error naming the rejection reason
func (a *Activity) Signup(email string) error {
	if email == "" {
		return ErrEmptyParticipant
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	if a.IsFull() {
		return ErrFull
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Unregister removes email from the activity.
// PRE: email is non-empty
// POST: email removed from Participants, or ErrNotSignedUp
func (a *Activity) Unregister(email string) error {
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return nil
		}
	}
	return ErrNotSignedUp
}
