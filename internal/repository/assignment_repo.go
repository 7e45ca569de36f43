package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"orgboard/internal/model"
)

type AssignmentRepository struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO task_assignments (user_id, task_id) VALUES ($1, $2) RETURNING id`,
		a.UserID, a.TaskID,
	).Scan(&a.ID)
}

func (r *AssignmentRepository) AssignmentExists(ctx context.Context, userID, taskID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_assignments WHERE user_id = $1 AND task_id = $2)`,
		userID, taskID,
	).Scan(&exists)
	return exists, err
}

// UserHasAssignments backs the restrict rule on user deletion.
func (r *AssignmentRepository) UserHasAssignments(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_assignments WHERE user_id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}
