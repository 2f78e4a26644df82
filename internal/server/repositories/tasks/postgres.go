// Package tasks stores user tasks in PostgreSQL.
package tasks

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/samber/oops"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, title, description, status, user_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	var desc sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (title, description, status, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, task.Title, task.Description, task.Status, task.UserID).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, oops.Code("TASK_EXISTS").With("title", task.Title).Wrap(common.ErrorAlreadyExists)
		}
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "create task").Wrap(err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "list tasks").With("user_id", userID).Wrap(err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, oops.Code("DB_SCAN_FAILED").With("operation", "list tasks").Wrap(err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "list tasks").Wrap(err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID int64) (*models.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id, userID int64) (*models.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID)
}

func (r *PostgresRepository) get(ctx context.Context, query string, id, userID int64) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oops.Code("TASK_NOT_FOUND").With("task_id", id).Wrap(common.ErrorNotFound)
		}
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "get task").With("task_id", id).Wrap(err)
	}
	return t, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	query :=
		`UPDATE tasks SET status = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, oops.Code("TASK_NOT_FOUND").With("task_id", id).Wrap(common.ErrorNotFound)
		}
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "update task").With("task_id", id).Wrap(err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return oops.Code("DB_QUERY_FAILED").With("operation", "delete task").With("task_id", id).Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return oops.Code("DB_QUERY_FAILED").With("operation", "delete task").Wrap(err)
	}
	if n == 0 {
		return oops.Code("TASK_NOT_FOUND").With("task_id", id).Wrap(common.ErrorNotFound)
	}
	return nil
}
