package activity_test

import (
	"testing"

	"mergington/internal/domain/activity"
)

func chessClub() activity.Activity {
	return activity.Activity{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 2,
		Participants:    []string{"a@mergington.edu"},
	}
}

// TestActivity_Validate tests validation of Activity.
func TestActivity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*activity.Activity)
		wantErr error
	}{
		{name: "valid", mutate: func(a *activity.Activity) {}},
		{
			name:    "empty name",
			mutate:  func(a *activity.Activity) { a.Name = "  " },
			wantErr: activity.ErrEmptyName,
		},
		{
			name:    "empty description",
			mutate:  func(a *activity.Activity) { a.Description = "" },
			wantErr: activity.ErrEmptyDescription,
		},
		{
			name:    "zero capacity",
			mutate:  func(a *activity.Activity) { a.MaxParticipants = 0 },
			wantErr: activity.ErrInvalidCapacity,
		},
		{
			name: "over capacity",
			mutate: func(a *activity.Activity) {
				a.Participants = []string{"a@mergington.edu", "b@mergington.edu", "c@mergington.edu"}
			},
			wantErr: activity.ErrOverCapacity,
		},
		{
			name: "duplicate participant",
			mutate: func(a *activity.Activity) {
				a.Participants = []string{"a@mergington.edu", "a@mergington.edu"}
			},
			wantErr: activity.ErrDuplicateSignup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := chessClub()
			tt.mutate(&a)
			err := a.Validate()
			if err != tt.wantErr {
				t.Errorf("Activity.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestActivity_Signup tests enrollment rules.
func TestActivity_Signup(t *testing.T) {
	a := chessClub()

	if err := a.Signup("a@mergington.edu"); err != activity.ErrAlreadySignedUp {
		t.Errorf("duplicate signup error = %v, want ErrAlreadySignedUp", err)
	}

	if err := a.Signup("b@mergington.edu"); err != nil {
		t.Fatalf("signup with headroom error = %v", err)
	}
	if a.SpotsLeft() != 0 {
		t.Errorf("SpotsLeft() = %d, want 0", a.SpotsLeft())
	}
	if !a.IsFull() {
		t.Error("expected activity to be full after second signup")
	}

	if err := a.Signup("c@mergington.edu"); err != activity.ErrFull {
		t.Errorf("signup when full error = %v, want ErrFull", err)
	}
	if len(a.Participants) != 2 {
		t.Errorf("participants = %v, want unchanged after rejection", a.Participants)
	}
}

// TestActivity_Unregister tests leaving an activity.
func TestActivity_Unregister(t *testing.T) {
	a := chessClub()

	if err := a.Unregister("nobody@mergington.edu"); err != activity.ErrNotSignedUp {
		t.Errorf("unregister of non-member error = %v, want ErrNotSignedUp", err)
	}

	if err := a.Unregister("a@mergington.edu"); err != nil {
		t.Fatalf("unregister error = %v", err)
	}
	if a.HasParticipant("a@mergington.edu") {
		t.Error("expected participant to be removed")
	}
	if a.SpotsLeft() != 2 {
		t.Errorf("SpotsLeft() = %d, want 2", a.SpotsLeft())
	}
}

// TestActivity_SignupOrderPreserved verifies server-ordered membership.
func TestActivity_SignupOrderPreserved(t *testing.T) {
	a := activity.Activity{Name: "Art Club", Description: "d", MaxParticipants: 5}
	for _, email := range []string{"one@mergington.edu", "two@mergington.edu", "three@mergington.edu"} {
		if err := a.Signup(email); err != nil {
			t.Fatalf("signup %s: %v", email, err)
		}
	}
	want := []string{"one@mergington.edu", "two@mergington.edu", "three@mergington.edu"}
	for i, email := range want {
		if a.Participants[i] != email {
			t.Fatalf("participants[%d] = %s, want %s", i, a.Participants[i], email)
		}
	}
}
