package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, title, description, status, priority, user_email, created_at, updated_at`

// TaskRepository handles task persistence operations in MySQL. Every read and
// write is scoped by the owner's email.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		nullString(task.Description),
		task.Status,
		task.Priority,
		task.OwnerEmail,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// GetOwned retrieves a task by id, only if it belongs to owner.
func (r *TaskRepository) GetOwned(ctx context.Context, owner, id string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_email = ?`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("selecting task: %w", err)
	}

	return task, nil
}

// ListByOwner retrieves at most limit tasks of owner matching filter, oldest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, owner string, filter model.TaskFilter, limit int) ([]model.Task, error) {
	query, args := buildListQuery(owner, filter, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// UpdateOwned writes the mutable fields of task, only if it belongs to task.OwnerEmail.
func (r *TaskRepository) UpdateOwned(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, updated_at = ?
		WHERE id = ? AND user_email = ?`

	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		nullString(task.Description),
		task.Status,
		task.Priority,
		task.UpdatedAt,
		task.ID,
		task.OwnerEmail,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	return requireRow(result)
}

// DeleteOwned removes a task, only if it belongs to owner.
func (r *TaskRepository) DeleteOwned(ctx context.Context, owner, id string) error {
	query := `DELETE FROM tasks WHERE id = ? AND user_email = ?`

	result, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return requireRow(result)
}

// buildListQuery assembles the filtered listing. Search is matched against the
// lower-cased columns so the result does not depend on the column collation.
func buildListQuery(owner string, filter model.TaskFilter, limit int) (string, []any) {
	var sb strings.Builder
	args := []any{owner}

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_email = ?`)

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		sb.WriteString(` AND (LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')`)
		args = append(args, pattern, pattern)
	}
	if filter.Status != "" {
		sb.WriteString(` AND status = ?`)
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		sb.WriteString(` AND priority = ?`)
		args = append(args, filter.Priority)
	}

	sb.WriteString(` ORDER BY created_at ASC, id ASC LIMIT ?`)
	args = append(args, limit)

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes LIKE wildcards in s match literally, using '!' as the escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var (
		t    model.Task
		desc sql.NullString
	)
	if err := row.Scan(
		&t.ID, &t.Title, &desc, &t.Status, &t.Priority,
		&t.OwnerEmail, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
