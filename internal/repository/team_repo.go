package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"orgboard/internal/model"
)

type TeamRepository struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, t *model.Team) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO teams (name) VALUES ($1) RETURNING id`, t.Name,
	).Scan(&t.ID)
}

func (r *TeamRepository) GetTeam(ctx context.Context, id int) (*model.Team, error) {
	var t model.Team
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) UpdateTeamName(ctx context.Context, t *model.Team) error {
	_, err := r.db.Exec(ctx, `UPDATE teams SET name = $2 WHERE id = $1`, t.ID, t.Name)
	return err
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}
