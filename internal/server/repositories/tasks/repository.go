package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository stores tasks. Every read and write except Create is scoped to
// the owning user; a task owned by someone else is reported as not found.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Task, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Task, error)
	GetForUpdate(ctx context.Context, id, userID int64) (*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, id, userID int64) error
}
