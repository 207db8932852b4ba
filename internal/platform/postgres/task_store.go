package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/platform/logger"
	"github.com/promanage/promanage-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend. Checklists are stored as JSONB.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

const taskColumns = "id, title, priority, assignee, checklist, due_date, status, creator, created_at"

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the creator or assignee doesn't exist
// (foreign key violation).
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	checklist, err := json.Marshal(task.Checklist)
	if err != nil {
		log.Error("failed to marshal checklist",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, priority, assignee, checklist, due_date, status, creator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Priority,
		uuidOrNil(task.Assignee),
		checklist,
		task.DueDate,
		task.Status,
		task.CreatorID,
		task.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("creator", task.CreatorID.String()))
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("creator", task.CreatorID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// ListForUser implements store.TaskStore.ListForUser
func (s *TaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	window *domain.Window,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE (creator = $1 OR assignee = $1)
	`
	args := []any{userID}

	if window != nil {
		query += " AND created_at >= $2 AND created_at <= $3"
		args = append(args, window.Start, window.End)
	}

	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return tasks, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// The status value is written verbatim; the column carries no check
// constraint, so arbitrary strings survive the round trip.
func (s *TaskStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET status = $1
		WHERE id = $2
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found during status update",
				slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task status updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(status)))
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found during delete",
				slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return task, nil
}

// AnalyticsForCreator implements store.TaskStore.AnalyticsForCreator
// A single aggregate query produces all eight counts.
func (s *TaskStore) AnalyticsForCreator(
	ctx context.Context,
	creatorID uuid.UUID,
) (*store.TaskAnalytics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'backlog'),
			COUNT(*) FILTER (WHERE status = 'todo'),
			COUNT(*) FILTER (WHERE status = 'inProgress'),
			COUNT(*) FILTER (WHERE status = 'done'),
			COUNT(*) FILTER (WHERE priority = 'Low'),
			COUNT(*) FILTER (WHERE priority = 'Moderate'),
			COUNT(*) FILTER (WHERE priority = 'High'),
			COUNT(*) FILTER (WHERE due_date IS NOT NULL AND status <> 'done')
		FROM tasks
		WHERE creator = $1
	`

	var analytics store.TaskAnalytics
	err := s.db.QueryRowContext(ctx, query, creatorID).Scan(
		&analytics.BacklogTasks,
		&analytics.TodoTasks,
		&analytics.InProgressTasks,
		&analytics.CompletedTasks,
		&analytics.LowPriority,
		&analytics.ModeratePriority,
		&analytics.HighPriority,
		&analytics.DueDateTasks,
	)
	if err != nil {
		log.Error("failed to compute task analytics",
			slog.String("error", err.Error()),
			slog.String("creator", creatorID.String()))
		return nil, err
	}

	return &analytics, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task      domain.Task
		assignee  uuid.NullUUID
		checklist []byte
		dueDate   sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Priority,
		&assignee,
		&checklist,
		&dueDate,
		&task.Status,
		&task.CreatorID,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assignee.Valid {
		id := assignee.UUID
		task.Assignee = &id
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	if err := json.Unmarshal(checklist, &task.Checklist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checklist: %w", err)
	}

	return &task, nil
}

// uuidOrNil converts an optional UUID into a driver-friendly nullable value.
func uuidOrNil(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
