package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"orgboard/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and fills in its id.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (email, password_hash, role_id, organization_id, team_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.RoleID, u.OrganizationID, u.TeamID,
	).Scan(&u.ID)
}

func (r *UserRepository) GetUser(ctx context.Context, id int) (*model.User, error) {
	query := `
        SELECT id, email, password_hash, role_id, organization_id, team_id
        FROM users
        WHERE id = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.OrganizationID, &u.TeamID,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, email, password_hash, role_id, organization_id, team_id
        FROM users
        WHERE email = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.OrganizationID, &u.TeamID,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) UpdateUser(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET email = $2, password_hash = $3, role_id = $4, team_id = $5
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.RoleID, u.TeamID)
	return err
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// SetTeam moves a user onto a team; a nil teamID clears membership.
func (r *UserRepository) SetTeam(ctx context.Context, userID int, teamID *int) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET team_id = $2 WHERE id = $1`, userID, teamID)
	return err
}

func (r *UserRepository) ListTeamMembers(ctx context.Context, teamID int) ([]model.User, error) {
	query := `
        SELECT id, email, password_hash, role_id, organization_id, team_id
        FROM users
        WHERE team_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.OrganizationID, &u.TeamID,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `
        SELECT id, email, password_hash, role_id, organization_id, team_id
        FROM users
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.OrganizationID, &u.TeamID,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
