package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/promanage/promanage-api/internal/api/shared"
	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/store"
)

// TaskHandler handles task management API requests.
type TaskHandler struct {
	taskStore store.TaskStore
	userStore store.UserStore
	now       func() time.Time // Injectable for testing date-window filters
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, userStore store.UserStore) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		userStore: userStore,
		now:       time.Now,
	}
}

// Create handles POST /api/task/create.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "User not found")
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Title == "" || req.Priority == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Title and Priority are required")
		return
	}

	if len(req.Checklist) == 0 || hasEmptyChecklistItem(req.Checklist) {
		RespondWithError(w, r, http.StatusBadRequest,
			`Each checklist item must have a valid "item" field.`)
		return
	}

	// The "assignees" field holds at most one email. It must resolve to an
	// existing user before the task is accepted.
	var assignee *uuid.UUID
	if req.Assignees != "" {
		user, err := h.userStore.GetByEmail(r.Context(), req.Assignees)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				RespondWithError(w, r, http.StatusBadRequest, "Invalid assignee email")
				return
			}
			slog.Error("failed to resolve assignee", "error", err)
			RespondWithError(w, r, http.StatusInternalServerError, "Task creation failed")
			return
		}
		assignee = &user.ID
	}

	checklist := make([]domain.ChecklistItem, 0, len(req.Checklist))
	for _, entry := range req.Checklist {
		checklist = append(checklist, domain.ChecklistItem{
			Item:      entry.Item,
			Completed: entry.Completed,
		})
	}

	task, err := domain.NewTask(
		req.Title,
		domain.TaskPriority(req.Priority),
		assignee,
		checklist,
		req.DueDate,
		caller.ID,
	)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		status := MapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			slog.Error("failed to create task", "error", err, "creator", caller.ID)
			RespondWithError(w, r, status, "Task creation failed")
			return
		}
		RespondWithError(w, r, status, GetSafeErrorMessage(err))
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, TaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// List handles GET /api/task/all?filter={today|week|month}.
// Tasks where the caller is creator or assignee come back partitioned into
// the four status buckets; an unrecognized filter means no date bound.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "User not found")
		return
	}

	var window *domain.Window
	if win, ok := domain.WindowForFilter(r.URL.Query().Get("filter"), h.now()); ok {
		window = &win
	}

	tasks, err := h.taskStore.ListForUser(r.Context(), caller.ID, window)
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "user_id", caller.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Tasks fetching failed")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ListTasksResponse{
		Message: "Tasks fetched successfully",
		Tasks:   bucketTasks(tasks),
	})
}

// UpdateStatus handles PATCH /api/task/{id}/status.
// The new status is stored verbatim, without membership validation, and no
// ownership check is made: any authenticated user can move any task.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req UpdateStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskStore.UpdateStatus(r.Context(), id, domain.TaskStatus(req.TaskStatus))
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to update task status", "error", err, "task_id", id)
		RespondWithError(w, r, http.StatusInternalServerError, "Task status update failed")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Task status updated successfully",
		Task:    task,
	})
}

// Delete handles DELETE /api/task/{id}/delete.
// Like UpdateStatus, this is deliberately unguarded by an ownership check.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.taskStore.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to delete task", "error", err, "task_id", id)
		RespondWithError(w, r, http.StatusInternalServerError, "Task deletion failed")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Task deleted successfully",
		Task:    task,
	})
}

// Analytics handles GET /api/task/analytics. Counts cover only tasks the
// caller created, not ones merely assigned to them.
func (h *TaskHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "User not found")
		return
	}

	analytics, err := h.taskStore.AnalyticsForCreator(r.Context(), caller.ID)
	if err != nil {
		slog.Error("failed to compute analytics", "error", err, "user_id", caller.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, analytics)
}

// hasEmptyChecklistItem reports whether any checklist entry lacks item text.
func hasEmptyChecklistItem(checklist []ChecklistItemRequest) bool {
	for _, entry := range checklist {
		if entry.Item == "" {
			return true
		}
	}
	return false
}

// bucketTasks partitions tasks by the four workflow states, preserving input
// order within each bucket. Tasks whose stored status is outside the four
// known values (possible via UpdateStatus) land in no bucket.
func bucketTasks(tasks []*domain.Task) TaskBuckets {
	buckets := TaskBuckets{
		Backlog:    []*domain.Task{},
		Todo:       []*domain.Task{},
		InProgress: []*domain.Task{},
		Done:       []*domain.Task{},
	}

	for _, task := range tasks {
		switch task.Status {
		case domain.StatusBacklog:
			buckets.Backlog = append(buckets.Backlog, task)
		case domain.StatusTodo:
			buckets.Todo = append(buckets.Todo, task)
		case domain.StatusInProgress:
			buckets.InProgress = append(buckets.InProgress, task)
		case domain.StatusDone:
			buckets.Done = append(buckets.Done, task)
		}
	}

	return buckets
}
