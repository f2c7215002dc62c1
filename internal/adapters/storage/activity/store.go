package activity

import (
	"context"
	"errors"

	domain "mergington/internal/domain/activity"
)

// Storage errors surfaced to orchestrators.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadyEnrolled = errors.New("participant is already enrolled")
	ErrFull            = errors.New("activity is at capacity")
	ErrNotEnrolled     = errors.New("participant is not enrolled")
)

// Store persists Activity state.
//
// AddParticipant and RemoveParticipant run inside a transaction so the
// capacity invariant holds even under concurrent signup commands.
type Store interface {
	GetByName(ctx context.Context, name string) (domain.Activity, error)
	Save(ctx context.Context, value domain.Activity) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]domain.Activity, error)
	AddParticipant(ctx context.Context, name, email string) error
	RemoveParticipant(ctx context.Context, name, email string) error
	Count(ctx context.Context) (int, error)
}
