package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/mocks"
)

// taskHandlerFixture bundles a TaskHandler with its mock collaborators.
type taskHandlerFixture struct {
	handler   *TaskHandler
	taskStore *mocks.MockTaskStore
	userStore *mocks.MockUserStore
	caller    *domain.User
}

func newTaskHandlerFixture(t *testing.T) *taskHandlerFixture {
	t.Helper()

	taskStore := mocks.NewMockTaskStore()
	userStore := mocks.NewMockUserStore()

	caller, err := domain.NewUser("Caller", "caller@example.com", "hashed:password123")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), caller))

	return &taskHandlerFixture{
		handler:   NewTaskHandler(taskStore, userStore),
		taskStore: taskStore,
		userStore: userStore,
		caller:    caller,
	}
}

// seedTask stores a task created by creator directly in the mock store.
func (f *taskHandlerFixture) seedTask(
	t *testing.T,
	title string,
	status domain.TaskStatus,
	creatorID uuid.UUID,
	createdAt time.Time,
) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(title, domain.PriorityLow, nil,
		[]domain.ChecklistItem{{Item: "step"}}, nil, creatorID)
	require.NoError(t, err)
	task.Status = status
	task.CreatedAt = createdAt
	f.taskStore.Tasks = append(f.taskStore.Tasks, task)
	return task
}

// routeRequest dispatches req through a chi router so URL parameters resolve.
func routeRequest(method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	validChecklist := []ChecklistItemRequest{{Item: "write tests"}}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		req := jsonRequest(t, http.MethodPost, "/api/task/create", CreateTaskRequest{
			Title:     "T",
			Priority:  "Low",
			Checklist: validChecklist,
		}, f.caller)
		rec := httptest.NewRecorder()

		f.handler.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Task created successfully", resp.Message)
		require.NotNil(t, resp.Task)
		assert.Equal(t, domain.StatusTodo, resp.Task.Status)
		assert.Equal(t, f.caller.ID, resp.Task.CreatorID)
		assert.Nil(t, resp.Task.DueDate)

		require.Len(t, f.taskStore.Tasks, 1)
		assert.Equal(t, "T", f.taskStore.Tasks[0].Title)
	})

	t.Run("missing title or priority", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		for _, body := range []CreateTaskRequest{
			{Priority: "Low", Checklist: validChecklist},
			{Title: "T", Checklist: validChecklist},
		} {
			rec := httptest.NewRecorder()
			f.handler.Create(rec, jsonRequest(t, http.MethodPost, "/api/task/create", body, f.caller))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Title and Priority are required", decodeMessage(t, rec))
		}
	})

	t.Run("empty or invalid checklist", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		for _, checklist := range [][]ChecklistItemRequest{
			nil,
			{},
			{{Item: "ok"}, {Item: ""}},
		} {
			rec := httptest.NewRecorder()
			f.handler.Create(rec, jsonRequest(t, http.MethodPost, "/api/task/create", CreateTaskRequest{
				Title:     "T",
				Priority:  "Low",
				Checklist: checklist,
			}, f.caller))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, `Each checklist item must have a valid "item" field.`, decodeMessage(t, rec))
		}
	})

	t.Run("unknown assignee email", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := httptest.NewRecorder()
		f.handler.Create(rec, jsonRequest(t, http.MethodPost, "/api/task/create", CreateTaskRequest{
			Title:     "T",
			Priority:  "Low",
			Assignees: "nobody@example.com",
			Checklist: validChecklist,
		}, f.caller))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid assignee email", decodeMessage(t, rec))
		assert.Empty(t, f.taskStore.Tasks)
	})

	t.Run("assignee email resolves to user id", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		assignee, err := domain.NewUser("Assignee", "assignee@example.com", "hashed:password123")
		require.NoError(t, err)
		require.NoError(t, f.userStore.Create(context.Background(), assignee))

		rec := httptest.NewRecorder()
		f.handler.Create(rec, jsonRequest(t, http.MethodPost, "/api/task/create", CreateTaskRequest{
			Title:     "T",
			Priority:  "Low",
			Assignees: "assignee@example.com",
			Checklist: validChecklist,
		}, f.caller))

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, f.taskStore.Tasks, 1)
		require.NotNil(t, f.taskStore.Tasks[0].Assignee)
		assert.Equal(t, assignee.ID, *f.taskStore.Tasks[0].Assignee)
	})

	t.Run("unknown priority", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := httptest.NewRecorder()
		f.handler.Create(rec, jsonRequest(t, http.MethodPost, "/api/task/create", CreateTaskRequest{
			Title:     "T",
			Priority:  "Critical",
			Checklist: validChecklist,
		}, f.caller))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.taskStore.Tasks)
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

	t.Run("partitions into four buckets", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		f.handler.now = func() time.Time { return now }

		f.seedTask(t, "b", domain.StatusBacklog, f.caller.ID, now)
		f.seedTask(t, "t1", domain.StatusTodo, f.caller.ID, now)
		f.seedTask(t, "t2", domain.StatusTodo, f.caller.ID, now)
		f.seedTask(t, "p", domain.StatusInProgress, f.caller.ID, now)
		f.seedTask(t, "d", domain.StatusDone, f.caller.ID, now)
		f.seedTask(t, "other", domain.StatusTodo, uuid.New(), now)

		rec := httptest.NewRecorder()
		f.handler.List(rec, jsonRequest(t, http.MethodGet, "/api/task/all", nil, f.caller))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ListTasksResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Tasks fetched successfully", resp.Message)
		assert.Len(t, resp.Tasks.Backlog, 1)
		assert.Len(t, resp.Tasks.Todo, 2)
		assert.Len(t, resp.Tasks.InProgress, 1)
		assert.Len(t, resp.Tasks.Done, 1)
		assert.Equal(t, "t1", resp.Tasks.Todo[0].Title)
		assert.Equal(t, "t2", resp.Tasks.Todo[1].Title)
	})

	t.Run("includes tasks assigned to the caller", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		f.handler.now = func() time.Time { return now }

		task := f.seedTask(t, "assigned", domain.StatusTodo, uuid.New(), now)
		task.Assignee = &f.caller.ID

		rec := httptest.NewRecorder()
		f.handler.List(rec, jsonRequest(t, http.MethodGet, "/api/task/all", nil, f.caller))

		var resp ListTasksResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Tasks.Todo, 1)
		assert.Equal(t, "assigned", resp.Tasks.Todo[0].Title)
	})

	t.Run("today filter bounds by creation date", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		f.handler.now = func() time.Time { return now }

		f.seedTask(t, "today", domain.StatusTodo, f.caller.ID, now.Add(-time.Hour))
		f.seedTask(t, "yesterday", domain.StatusTodo, f.caller.ID, now.AddDate(0, 0, -1))

		rec := httptest.NewRecorder()
		f.handler.List(rec,
			jsonRequest(t, http.MethodGet, "/api/task/all?filter=today", nil, f.caller))

		var resp ListTasksResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Tasks.Todo, 1)
		assert.Equal(t, "today", resp.Tasks.Todo[0].Title)
	})

	t.Run("unrecognized filter means no date bound", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		f.handler.now = func() time.Time { return now }

		f.seedTask(t, "ancient", domain.StatusTodo, f.caller.ID, now.AddDate(-1, 0, 0))

		rec := httptest.NewRecorder()
		f.handler.List(rec,
			jsonRequest(t, http.MethodGet, "/api/task/all?filter=bogus", nil, f.caller))

		var resp ListTasksResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Tasks.Todo, 1)
	})

	t.Run("empty buckets serialize as arrays", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		rec := httptest.NewRecorder()
		f.handler.List(rec, jsonRequest(t, http.MethodGet, "/api/task/all", nil, f.caller))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "null")
		assert.Contains(t, rec.Body.String(), `"backlog":[]`)
		assert.Contains(t, rec.Body.String(), `"done":[]`)
	})
}

func TestTaskHandlerUpdateStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

	t.Run("stores arbitrary status strings verbatim", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "T", domain.StatusTodo, f.caller.ID, now)

		req := jsonRequest(t, http.MethodPatch, "/api/task/"+task.ID.String()+"/status",
			UpdateStatusRequest{TaskStatus: "parked"}, f.caller)
		rec := routeRequest(http.MethodPatch, "/api/task/{id}/status", f.handler.UpdateStatus, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Task status updated successfully", resp.Message)
		require.NotNil(t, resp.Task)
		assert.Equal(t, domain.TaskStatus("parked"), resp.Task.Status)
		assert.Equal(t, domain.TaskStatus("parked"), task.Status)
	})

	t.Run("no ownership check", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "T", domain.StatusTodo, uuid.New(), now)

		req := jsonRequest(t, http.MethodPatch, "/api/task/"+task.ID.String()+"/status",
			UpdateStatusRequest{TaskStatus: "done"}, f.caller)
		rec := routeRequest(http.MethodPatch, "/api/task/{id}/status", f.handler.UpdateStatus, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.StatusDone, task.Status)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		req := jsonRequest(t, http.MethodPatch, "/api/task/"+uuid.NewString()+"/status",
			UpdateStatusRequest{TaskStatus: "done"}, f.caller)
		rec := routeRequest(http.MethodPatch, "/api/task/{id}/status", f.handler.UpdateStatus, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task not found", decodeMessage(t, rec))
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		req := jsonRequest(t, http.MethodPatch, "/api/task/not-a-uuid/status",
			UpdateStatusRequest{TaskStatus: "done"}, f.caller)
		rec := routeRequest(http.MethodPatch, "/api/task/{id}/status", f.handler.UpdateStatus, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid task id", decodeMessage(t, rec))
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

	t.Run("returns deleted record", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "Doomed", domain.StatusTodo, f.caller.ID, now)

		req := jsonRequest(t, http.MethodDelete, "/api/task/"+task.ID.String()+"/delete", nil, f.caller)
		rec := routeRequest(http.MethodDelete, "/api/task/{id}/delete", f.handler.Delete, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Task deleted successfully", resp.Message)
		require.NotNil(t, resp.Task)
		assert.Equal(t, "Doomed", resp.Task.Title)
		assert.Empty(t, f.taskStore.Tasks)
	})

	t.Run("unknown task", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		req := jsonRequest(t, http.MethodDelete, "/api/task/"+uuid.NewString()+"/delete", nil, f.caller)
		rec := routeRequest(http.MethodDelete, "/api/task/{id}/delete", f.handler.Delete, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task not found", decodeMessage(t, rec))
	})
}

func TestTaskHandlerAnalytics(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

	t.Run("counts creator tasks only", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		f.seedTask(t, "b", domain.StatusBacklog, f.caller.ID, now)
		f.seedTask(t, "t", domain.StatusTodo, f.caller.ID, now)
		done := f.seedTask(t, "d", domain.StatusDone, f.caller.ID, now)
		overdue := f.seedTask(t, "o", domain.StatusInProgress, f.caller.ID, now)
		f.seedTask(t, "other", domain.StatusTodo, uuid.New(), now)

		due := now.Add(24 * time.Hour)
		done.DueDate = &due
		overdue.DueDate = &due
		overdue.Priority = domain.PriorityHigh

		rec := httptest.NewRecorder()
		f.handler.Analytics(rec, jsonRequest(t, http.MethodGet, "/api/task/analytics", nil, f.caller))

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]int
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 1, body["backlogTasks"])
		assert.Equal(t, 1, body["todoTasks"])
		assert.Equal(t, 1, body["inProgressTasks"])
		assert.Equal(t, 1, body["completedTasks"])
		assert.Equal(t, 3, body["lowPriority"])
		assert.Equal(t, 0, body["moderatePriority"])
		assert.Equal(t, 1, body["highPriority"])
		// Done tasks with a due date do not count as at risk.
		assert.Equal(t, 1, body["dueDateTasks"])
	})

	t.Run("fresh user gets all zeroes", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)

		rec := httptest.NewRecorder()
		f.handler.Analytics(rec, jsonRequest(t, http.MethodGet, "/api/task/analytics", nil, f.caller))

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]int
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		for _, field := range []string{
			"backlogTasks", "todoTasks", "inProgressTasks", "completedTasks",
			"lowPriority", "moderatePriority", "highPriority", "dueDateTasks",
		} {
			assert.Zero(t, body[field], field)
		}
	})
}
