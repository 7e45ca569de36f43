package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"orgboard/internal/model"
)

type OrganizationRepository struct {
	db *pgxpool.Pool
}

func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) CreateOrganization(ctx context.Context, o *model.Organization) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO organizations (name) VALUES ($1) RETURNING id`, o.Name,
	).Scan(&o.ID)
}

func (r *OrganizationRepository) GetOrganization(ctx context.Context, id int) (*model.Organization, error) {
	var o model.Organization
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM organizations WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepository) UpdateOrganization(ctx context.Context, o *model.Organization) error {
	_, err := r.db.Exec(ctx, `UPDATE organizations SET name = $2 WHERE id = $1`, o.ID, o.Name)
	return err
}
