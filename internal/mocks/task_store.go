package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn              func(ctx context.Context, task *domain.Task) error
	ListForUserFn         func(ctx context.Context, userID uuid.UUID, window *domain.Window) ([]*domain.Task, error)
	UpdateStatusFn        func(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
	DeleteFn              func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	AnalyticsForCreatorFn func(ctx context.Context, creatorID uuid.UUID) (*store.TaskAnalytics, error)

	// Tasks holds the default in-memory state in insertion order.
	Tasks []*domain.Task

	// Errors forced onto the default implementations
	CreateError error
	ListError   error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if err := task.Validate(); err != nil {
		return err
	}

	m.Tasks = append(m.Tasks, task)
	return nil
}

// ListForUser implements the TaskStore interface
func (m *MockTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	window *domain.Window,
) ([]*domain.Task, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, window)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	var tasks []*domain.Task
	for _, task := range m.Tasks {
		involved := task.CreatorID == userID ||
			(task.Assignee != nil && *task.Assignee == userID)
		if !involved {
			continue
		}
		if window != nil && !window.Contains(task.CreatedAt) {
			continue
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// UpdateStatus implements the TaskStore interface
func (m *MockTaskStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			task.Status = status
			return task, nil
		}
	}

	return nil, store.ErrTaskNotFound
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, task := range m.Tasks {
		if task.ID == id {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return task, nil
		}
	}

	return nil, store.ErrTaskNotFound
}

// AnalyticsForCreator implements the TaskStore interface
func (m *MockTaskStore) AnalyticsForCreator(
	ctx context.Context,
	creatorID uuid.UUID,
) (*store.TaskAnalytics, error) {
	if m.AnalyticsForCreatorFn != nil {
		return m.AnalyticsForCreatorFn(ctx, creatorID)
	}

	analytics := &store.TaskAnalytics{}
	for _, task := range m.Tasks {
		if task.CreatorID != creatorID {
			continue
		}

		switch task.Status {
		case domain.StatusBacklog:
			analytics.BacklogTasks++
		case domain.StatusTodo:
			analytics.TodoTasks++
		case domain.StatusInProgress:
			analytics.InProgressTasks++
		case domain.StatusDone:
			analytics.CompletedTasks++
		}

		switch task.Priority {
		case domain.PriorityLow:
			analytics.LowPriority++
		case domain.PriorityModerate:
			analytics.ModeratePriority++
		case domain.PriorityHigh:
			analytics.HighPriority++
		}

		if task.DueDate != nil && task.Status != domain.StatusDone {
			analytics.DueDateTasks++
		}
	}

	return analytics, nil
}
