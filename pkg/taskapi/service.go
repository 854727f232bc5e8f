// Package taskapi talks to the task backend that owns the task list and
// to the display power endpoints exposed next to it.
package taskapi

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kiosk/pkg/task"
)

// Service is the task backend as seen by the kiosk. Implementations must
// be safe for use from multiple goroutines.
type Service interface {
	// Today returns today's due tasks in server order, with
	// CompletedToday computed by the server.
	Today(ctx context.Context) ([]task.Task, error)

	// All returns every active task, in no particular order.
	All(ctx context.Context) ([]task.Task, error)

	// Create adds a task and returns it with its server id.
	Create(ctx context.Context, t task.Task) (task.Task, error)

	// Update replaces the task with t.ID.
	Update(ctx context.Context, t task.Task) error

	// Delete removes a task.
	Delete(ctx context.Context, id task.ID) error

	// Complete marks a task done for the current day.
	Complete(ctx context.Context, id task.ID) error

	// SetPosition moves a task to the 1-based position.
	SetPosition(ctx context.Context, id task.ID, position int) error

	// Reorder sets the full order.
	Reorder(ctx context.Context, ids []task.ID) error
}

// PowerHooks switch the physical display. Callers treat them as
// best-effort.
type PowerHooks interface {
	ScreenOn(ctx context.Context) error
	ScreenOff(ctx context.Context) error
	BacklightOn(ctx context.Context) error
	BacklightOff(ctx context.Context) error
}

var (
	ErrNotFound           = errors.New("taskapi: not found")
	ErrValidation         = errors.New("taskapi: rejected by server")
	ErrPositionOutOfRange = errors.New("taskapi: position out of range")
	ErrEmptyOrder         = errors.New("taskapi: reorder needs at least one task")
	ErrDuplicateID        = errors.New("taskapi: duplicate task id in order")
)

// StatusError is a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("taskapi: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("taskapi: status %d: %s", e.Code, e.Message)
}

// Is maps status codes onto the package sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == 404
	case ErrValidation:
		return e.Code == 400 || e.Code == 422
	}
	return false
}

// CheckPosition validates a 1-based position against count tasks. Out of
// range positions are rejected, never clamped.
func CheckPosition(position, count int) error {
	if position < 1 || position > count {
		return fmt.Errorf("%w: %d not in 1..%d", ErrPositionOutOfRange, position, count)
	}
	return nil
}

// CheckOrder validates a reorder request body.
func CheckOrder(ids []task.ID) error {
	if len(ids) == 0 {
		return ErrEmptyOrder
	}
	seen := make(map[task.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
