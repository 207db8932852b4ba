package api

import (
	"time"

	"github.com/promanage/promanage-api/internal/domain"
)

// Common request/response structures. Field names follow the public JSON
// contract: notably "assignees" (a single email despite the plural name),
// "taskStatus", and "updateEmail".

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the generic acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
// Name is a pointer because a missing name and an empty name behave
// differently: missing is rejected outright, empty leaves the stored name
// unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	UpdateEmail string  `json:"updateEmail"`
	OldPassword string  `json:"oldPassword"`
	NewPassword string  `json:"newPassword"`
}

// EmailResult is one row of an email-prefix search response.
type EmailResult struct {
	Email string `json:"email"`
}

// NameResponse carries a user's display name.
type NameResponse struct {
	Name string `json:"name"`
}

// ChecklistItemRequest is one checklist entry in a task creation payload.
type ChecklistItemRequest struct {
	Item      string `json:"item"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title     string                 `json:"title"`
	Priority  string                 `json:"priority"`
	Assignees string                 `json:"assignees"`
	Checklist []ChecklistItemRequest `json:"checklist"`
	DueDate   *time.Time             `json:"dueDate"`
}

// UpdateStatusRequest defines the payload for the status update endpoint.
type UpdateStatusRequest struct {
	TaskStatus string `json:"taskStatus"`
}

// TaskResponse wraps a single task with an acknowledgement message.
type TaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// TaskBuckets partitions a task listing by workflow state. All four slices
// are always present, empty ones serializing as [].
type TaskBuckets struct {
	Backlog    []*domain.Task `json:"backlog"`
	Todo       []*domain.Task `json:"todo"`
	InProgress []*domain.Task `json:"inProgress"`
	Done       []*domain.Task `json:"done"`
}

// ListTasksResponse is the envelope for the task listing endpoint.
type ListTasksResponse struct {
	Message string      `json:"message"`
	Tasks   TaskBuckets `json:"tasks"`
}
