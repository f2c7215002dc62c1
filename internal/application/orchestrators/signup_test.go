package orchestrators

import (
	"context"
	"testing"

	activityStore "mergington/internal/adapters/storage/activity"
	"mergington/internal/domain/account"
	"mergington/internal/domain/activity"
)

// mockActivityCommands implements ActivityStoreForCommands with canned errors.
type mockActivityCommands struct {
	addErr    error
	removeErr error
	added     []string
	removed   []string
}

// AddParticipant implements the mock activity store.
// PRE: none
// POST: records the call and returns the canned error
func (m *mockActivityCommands) AddParticipant(_ context.Context, name, email string) error {
	m.added = append(m.added, name+"|"+email)
	return m.addErr
}

// RemoveParticipant implements the mock activity store.
// PRE: none
// POST: records the call and returns the canned error
func (m *mockActivityCommands) RemoveParticipant(_ context.Context, name, email string) error {
	m.removed = append(m.removed, name+"|"+email)
	return m.removeErr
}

// TestExecuteSignup_Success tests the success message.
func TestExecuteSignup_Success(t *testing.T) {
	store := &mockActivityCommands{}
	msg, err := ExecuteSignup(context.Background(), CommandInput{
		ActivityName: "Chess Club",
		Email:        "ana@mergington.edu",
		Role:         account.RoleStudent,
	}, CommandDeps{ActivityStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Successfully signed up for Chess Club" {
		t.Errorf("message = %q", msg)
	}
	if len(store.added) != 1 || store.added[0] != "Chess Club|ana@mergington.edu" {
		t.Errorf("added = %v", store.added)
	}
}

// TestExecuteSignup_RoleGate tests that non-students are rejected before any store call.
func TestExecuteSignup_RoleGate(t *testing.T) {
	for _, role := range []string{account.RoleTeacher, account.RoleAdmin} {
		store := &mockActivityCommands{}
		_, err := ExecuteSignup(context.Background(), CommandInput{
			ActivityName: "Chess Club",
			Email:        "staff@mergington.edu",
			Role:         role,
		}, CommandDeps{ActivityStore: store})
		if err != ErrOnlyStudents {
			t.Errorf("role %s: error = %v, want ErrOnlyStudents", role, err)
		}
		if len(store.added) != 0 {
			t.Errorf("role %s: store was called despite role gate", role)
		}
	}
}

// TestExecuteSignup_StoreErrors tests translation of store outcomes.
func TestExecuteSignup_StoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "missing activity", storeErr: activityStore.ErrNotFound, wantErr: ErrActivityNotFound},
		{name: "already enrolled", storeErr: activityStore.ErrAlreadyEnrolled, wantErr: activity.ErrAlreadySignedUp},
		{name: "full", storeErr: activityStore.ErrFull, wantErr: activity.ErrFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockActivityCommands{addErr: tt.storeErr}
			_, err := ExecuteSignup(context.Background(), CommandInput{
				ActivityName: "Chess Club",
				Email:        "ana@mergington.edu",
				Role:         account.RoleStudent,
			}, CommandDeps{ActivityStore: store})
			if err != tt.wantErr {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestExecuteUnregister tests success and error translation.
func TestExecuteUnregister(t *testing.T) {
	store := &mockActivityCommands{}
	msg, err := ExecuteUnregister(context.Background(), CommandInput{
		ActivityName: "Chess Club",
		Email:        "ana@mergington.edu",
		Role:         account.RoleStudent,
	}, CommandDeps{ActivityStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Successfully unregistered from Chess Club" {
		t.Errorf("message = %q", msg)
	}

	store = &mockActivityCommands{removeErr: activityStore.ErrNotEnrolled}
	_, err = ExecuteUnregister(context.Background(), CommandInput{
		ActivityName: "Chess Club",
		Email:        "ana@mergington.edu",
	}, CommandDeps{ActivityStore: store})
	if err != activity.ErrNotSignedUp {
		t.Errorf("error = %v, want ErrNotSignedUp", err)
	}
}

// TestExecuteUnregister_AnyRole tests that unregister has no role gate.
func TestExecuteUnregister_AnyRole(t *testing.T) {
	store := &mockActivityCommands{}
	_, err := ExecuteUnregister(context.Background(), CommandInput{
		ActivityName: "Chess Club",
		Email:        "teach@mergington.edu",
		Role:         account.RoleTeacher,
	}, CommandDeps{ActivityStore: store})
	if err != nil {
		t.Errorf("unexpected error for teacher unregister: %v", err)
	}
}
