package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
)

// TaskService manages tasks on behalf of their owner. Tasks of other users
// are invisible: reads and writes on them report common.ErrorNotFound.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) Create(ctx context.Context, userID int64, title string, description *string, status models.TaskStatus) (*models.Task, error) {
	if err := validateTask(title, description, status); err != nil {
		return nil, err
	}
	return s.repomanager.Tasks(s.db).Create(ctx, &models.Task{
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
	})
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetByID(ctx, id, userID)
}

// UpdateStatus locks the task, checks ownership and stores the new status in
// one transaction.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, id int64, status models.TaskStatus) (*models.Task, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	var task *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		if _, err := repo.GetForUpdate(ctx, id, userID); err != nil {
			return err
		}

		t, err := repo.UpdateStatus(ctx, id, status)
		if err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, id, userID)
}
