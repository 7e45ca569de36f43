package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"orgboard/internal/model"
)

type BoardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBoardRepository(db *pgxpool.Pool, logger *zap.Logger) *BoardRepository {
	return &BoardRepository{db: db, logger: logger}
}

func (r *BoardRepository) CreateBoard(ctx context.Context, b *model.Board) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO boards (name, team_id) VALUES ($1, $2) RETURNING id`,
		b.Name, b.TeamID,
	).Scan(&b.ID)
	if err != nil {
		r.logger.Error("Failed to insert board",
			zap.Error(err),
			zap.String("name", b.Name),
		)
		return err
	}
	r.logger.Info("Board inserted successfully", zap.Int("board_id", b.ID))
	return nil
}

func (r *BoardRepository) GetBoard(ctx context.Context, id int) (*model.Board, error) {
	var b model.Board
	err := r.db.QueryRow(ctx,
		`SELECT id, name, team_id FROM boards WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.TeamID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BoardRepository) UpdateBoardName(ctx context.Context, b *model.Board) error {
	_, err := r.db.Exec(ctx, `UPDATE boards SET name = $2 WHERE id = $1`, b.ID, b.Name)
	return err
}

func (r *BoardRepository) ListByTeam(ctx context.Context, teamID int) ([]model.Board, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, team_id FROM boards WHERE team_id = $1 ORDER BY id`, teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []model.Board{}
	for rows.Next() {
		var b model.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.TeamID); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// DeleteBoardWithTasks removes the board's assignments, tasks and the
// board itself in a single transaction, so a crash can never leave a
// half-deleted board behind.
func (r *BoardRepository) DeleteBoardWithTasks(ctx context.Context, boardID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM task_assignments
         WHERE task_id IN (SELECT id FROM tasks WHERE board_id = $1)`, boardID,
	); err != nil {
		r.logger.Error("Failed to delete board assignments",
			zap.Error(err),
			zap.Int("board_id", boardID),
		)
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE board_id = $1`, boardID); err != nil {
		r.logger.Error("Failed to delete board tasks",
			zap.Error(err),
			zap.Int("board_id", boardID),
		)
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM boards WHERE id = $1`, boardID); err != nil {
		r.logger.Error("Failed to delete board",
			zap.Error(err),
			zap.Int("board_id", boardID),
		)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("Board deleted with its tasks", zap.Int("board_id", boardID))
	return nil
}
