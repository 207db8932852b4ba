package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrTaskIDEmpty         = errors.New("task ID cannot be empty")
	ErrTaskTitleEmpty      = errors.New("task title cannot be empty")
	ErrTaskPriorityEmpty   = errors.New("task priority cannot be empty")
	ErrTaskPriorityInvalid = errors.New("task priority must be Low, Moderate, or High")
	ErrTaskCreatorEmpty    = errors.New("task creator cannot be empty")
	ErrChecklistEmpty      = errors.New("checklist cannot be empty")
	ErrChecklistItemNoText = errors.New("each checklist entry must have item text")
)

// TaskPriority classifies a task's urgency. The set is closed.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityModerate TaskPriority = "Moderate"
	PriorityHigh     TaskPriority = "High"
)

// Valid reports whether the priority is one of the three legal values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityModerate, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus is a task's workflow state. New tasks start in StatusTodo and
// any state may transition to any other; done tasks can be reopened.
//
// The status update endpoint writes whatever string the client sends, so
// persisted values are not guaranteed to stay within the four constants.
// List partitioning and analytics only recognize the four.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inProgress"
	StatusDone       TaskStatus = "done"
)

// ChecklistItem is a single sub-item within a task's checklist.
type ChecklistItem struct {
	Item      string `json:"item"`
	Completed bool   `json:"completed"`
}

// Task represents a unit of work on the board.
//
// The wire names mirror the public API: "assignees" is singular (one
// optional user reference) despite the plural name, and the status field is
// exposed as "taskStatus".
type Task struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Priority  TaskPriority    `json:"priority"`
	Assignee  *uuid.UUID      `json:"assignees"`
	Checklist []ChecklistItem `json:"checklist"`
	DueDate   *time.Time      `json:"dueDate,omitempty"`
	Status    TaskStatus      `json:"taskStatus"`
	CreatorID uuid.UUID       `json:"creator"`
	CreatedAt time.Time       `json:"creationDate"`
}

// NewTask creates a Task owned by creatorID. The status is always StatusTodo
// and the creation timestamp is set once, here. An empty priority defaults to
// PriorityModerate. Returns a validation error if any required field is
// missing or out of range.
func NewTask(
	title string,
	priority TaskPriority,
	assignee *uuid.UUID,
	checklist []ChecklistItem,
	dueDate *time.Time,
	creatorID uuid.UUID,
) (*Task, error) {
	if priority == "" {
		priority = PriorityModerate
	}

	task := &Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  priority,
		Assignee:  assignee,
		Checklist: checklist,
		DueDate:   dueDate,
		Status:    StatusTodo,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the creation-time invariants: required title and creator,
// a legal priority, and a non-empty checklist whose entries all carry item
// text. Status is deliberately not checked here; see TaskStatus.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.Priority == "" {
		return ErrTaskPriorityEmpty
	}

	if !t.Priority.Valid() {
		return ErrTaskPriorityInvalid
	}

	if t.CreatorID == uuid.Nil {
		return ErrTaskCreatorEmpty
	}

	if len(t.Checklist) == 0 {
		return ErrChecklistEmpty
	}

	for _, entry := range t.Checklist {
		if entry.Item == "" {
			return ErrChecklistItemNoText
		}
	}

	return nil
}
