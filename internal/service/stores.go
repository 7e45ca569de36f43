// Package service implements the role-gated workflow operations over
// the record store: team directory, board workflow, task lifecycle and
// the admin/auth flows. Every public operation resolves to a
// response.Response envelope.
package service

import (
	"context"

	"orgboard/internal/model"
)

// Store interfaces are satisfied by the pgx repositories; absence is
// signalled with pgx.ErrNoRows.

type UserStore interface {
	GetUser(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id int) error
	SetTeam(ctx context.Context, userID int, teamID *int) error
	ListTeamMembers(ctx context.Context, teamID int) ([]model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

type TeamStore interface {
	GetTeam(ctx context.Context, id int) (*model.Team, error)
	CreateTeam(ctx context.Context, t *model.Team) error
	UpdateTeamName(ctx context.Context, t *model.Team) error
	DeleteTeam(ctx context.Context, id int) error
}

type BoardStore interface {
	GetBoard(ctx context.Context, id int) (*model.Board, error)
	CreateBoard(ctx context.Context, b *model.Board) error
	UpdateBoardName(ctx context.Context, b *model.Board) error
	ListByTeam(ctx context.Context, teamID int) ([]model.Board, error)
	DeleteBoardWithTasks(ctx context.Context, boardID int) error
}

type TaskStore interface {
	GetTask(ctx context.Context, id int) (*model.Task, error)
	CreateTask(ctx context.Context, t *model.Task) error
	UpdateTask(ctx context.Context, t *model.Task) error
	SetStatus(ctx context.Context, taskID, statusID int) error
	DeleteTask(ctx context.Context, id int) error
	ListByBoard(ctx context.Context, boardID int) ([]model.Task, error)
}

type AssignmentStore interface {
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	AssignmentExists(ctx context.Context, userID, taskID int) (bool, error)
	UserHasAssignments(ctx context.Context, userID int) (bool, error)
}

type OrganizationStore interface {
	GetOrganization(ctx context.Context, id int) (*model.Organization, error)
	CreateOrganization(ctx context.Context, o *model.Organization) error
	UpdateOrganization(ctx context.Context, o *model.Organization) error
}

// EventPublisher is satisfied by mq.Producer. Publishing is best
// effort; a failed publish never fails the operation.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
