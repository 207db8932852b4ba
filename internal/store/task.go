package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/promanage/promanage-api/internal/domain"
)

// TaskAnalytics holds the per-status and per-priority task counts for one
// creator, plus the count of not-done tasks carrying a due date. The JSON
// field names are part of the public analytics response.
type TaskAnalytics struct {
	BacklogTasks    int `json:"backlogTasks"`
	TodoTasks       int `json:"todoTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`

	LowPriority      int `json:"lowPriority"`
	ModeratePriority int `json:"moderatePriority"`
	HighPriority     int `json:"highPriority"`

	// DueDateTasks counts tasks with a non-null due date that are not done,
	// i.e. the ones at risk of becoming overdue.
	DueDateTasks int `json:"dueDateTasks"`
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store, validating it first.
	// Returns domain validation errors for invalid tasks and
	// ErrInvalidEntity when a referenced user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// ListForUser returns all tasks where the given user is the creator or
	// the assignee, optionally bounded to a creation-date window (bounds
	// inclusive). Results come back in natural storage order.
	ListForUser(ctx context.Context, userID uuid.UUID, window *domain.Window) ([]*domain.Task, error)

	// UpdateStatus overwrites the task's status by ID and returns the
	// updated record. The status string is stored verbatim; no membership
	// check against the four workflow states is performed.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// Delete removes the task by ID and returns its prior contents.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// AnalyticsForCreator computes the eight analytics counts over the tasks
	// created by the given user. A user with no tasks gets all zeros.
	AnalyticsForCreator(ctx context.Context, creatorID uuid.UUID) (*TaskAnalytics, error)
}
