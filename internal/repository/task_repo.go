package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"orgboard/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) CreateTask(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.Int("board_id", t.BoardID),
		zap.String("title", t.Title),
		zap.Int("status_id", t.StatusID),
	)
	query := `
        INSERT INTO tasks (board_id, status_id, title, description, estimation, headcount)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		t.BoardID, t.StatusID, t.Title, t.Description, t.Estimation, t.Headcount,
	).Scan(&t.ID)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("board_id", t.BoardID),
		)
		return err
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("board_id", t.BoardID),
	)
	return nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id int) (*model.Task, error) {
	query := `
        SELECT id, board_id, status_id, title, description, estimation, headcount
        FROM tasks
        WHERE id = $1
    `
	var t model.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.BoardID, &t.StatusID, &t.Title, &t.Description, &t.Estimation, &t.Headcount,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, t *model.Task) error {
	query := `
        UPDATE tasks
        SET title = $2, description = $3, estimation = $4, headcount = $5
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, t.ID, t.Title, t.Description, t.Estimation, t.Headcount)
	return err
}

// SetStatus moves a task to a new lifecycle status.
func (r *TaskRepository) SetStatus(ctx context.Context, taskID, statusID int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tasks SET status_id = $2 WHERE id = $1`, taskID, statusID,
	)
	if err != nil {
		r.logger.Error("Failed to update task status",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return err
	}
	r.logger.Info("Task status updated",
		zap.Int("task_id", taskID),
		zap.Int("status_id", statusID),
		zap.Int64("rows_affected", result.RowsAffected()),
	)
	return nil
}

// DeleteTask removes the task; its assignments go with it via the
// cascade rule on task_assignments.
func (r *TaskRepository) DeleteTask(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID int) ([]model.Task, error) {
	r.logger.Debug("Listing tasks for board", zap.Int("board_id", boardID))
	query := `
        SELECT id, board_id, status_id, title, description, estimation, headcount
        FROM tasks
        WHERE board_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, boardID)
	if err != nil {
		r.logger.Error("Failed to query tasks",
			zap.Error(err),
			zap.Int("board_id", boardID),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.BoardID, &t.StatusID, &t.Title, &t.Description, &t.Estimation, &t.Headcount,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
