package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	activityStore "mergington/internal/adapters/storage/activity"
	"mergington/internal/domain/account"
	"mergington/internal/domain/activity"
)

// ActivityStoreForCommands defines the store interface needed by signup and unregister.
type ActivityStoreForCommands interface {
	AddParticipant(ctx context.Context, name, email string) error
	RemoveParticipant(ctx context.Context, name, email string) error
}

// CommandInput identifies the actor and target activity of a mutation.
type CommandInput struct {
	ActivityName string
	Email        string
	Role         string
}

// CommandDeps holds dependencies for signup and unregister.
type CommandDeps struct {
	ActivityStore ActivityStoreForCommands
}

var (
	ErrOnlyStudents     = errors.New("Only students can sign up for activities")
	ErrActivityNotFound = errors.New("Activity not found")
)

// ExecuteSignup enrolls the acting student in an activity.
// The store performs the capacity and uniqueness checks transactionally; this
// orchestrator only translates its outcomes into user-facing results.
// PRE: input identifies an authenticated actor
// POST: Participant added, or a rejection error with the reason
func ExecuteSignup(ctx context.Context, input CommandInput, deps CommandDeps) (string, error) {
	if input.Role != account.RoleStudent {
		return "", ErrOnlyStudents
	}

	err := deps.ActivityStore.AddParticipant(ctx, input.ActivityName, input.Email)
	switch {
	case err == nil:
	case errors.Is(err, activityStore.ErrNotFound):
		return "", ErrActivityNotFound
	case errors.Is(err, activityStore.ErrAlreadyEnrolled):
		return "", activity.ErrAlreadySignedUp
	case errors.Is(err, activityStore.ErrFull):
		return "", activity.ErrFull
	default:
		return "", fmt.Errorf("add participant: %w", err)
	}

	slog.Info("enroll_event", "event", "signup", "activity", input.ActivityName, "email", input.Email)
	return fmt.Sprintf("Successfully signed up for %s", input.ActivityName), nil
}

// ExecuteUnregister removes the acting user from an activity.
// PRE: input identifies an authenticated actor
// POST: Participant removed, or a rejection error with the reason
func ExecuteUnregister(ctx context.Context, input CommandInput, deps CommandDeps) (string, error) {
	err := deps.ActivityStore.RemoveParticipant(ctx, input.ActivityName, input.Email)
	switch {
	case err == nil:
	case errors.Is(err, activityStore.ErrNotFound):
		return "", ErrActivityNotFound
	case errors.Is(err, activityStore.ErrNotEnrolled):
		return "", activity.ErrNotSignedUp
	default:
		return "", fmt.Errorf("remove participant: %w", err)
	}

	slog.Info("enroll_event", "event", "unregister", "activity", input.ActivityName, "email", input.Email)
	return fmt.Sprintf("Successfully unregistered from %s", input.ActivityName), nil
}
