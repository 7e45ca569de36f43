// Package access holds the role and membership predicates every
// workflow operation gates on. Each predicate re-reads current stored
// state; nothing is cached, since membership can change between calls.
package access

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"orgboard/internal/model"
)

type UserStore interface {
	GetUser(ctx context.Context, id int) (*model.User, error)
}

type BoardStore interface {
	GetBoard(ctx context.Context, id int) (*model.Board, error)
}

type AssignmentStore interface {
	AssignmentExists(ctx context.Context, userID, taskID int) (bool, error)
}

// Gate answers role and membership questions. A missing user, board or
// task makes the predicate false rather than an error: unresolved
// identity is a denial, not a fault.
type Gate struct {
	users       UserStore
	boards      BoardStore
	assignments AssignmentStore
}

func NewGate(users UserStore, boards BoardStore, assignments AssignmentStore) *Gate {
	return &Gate{users: users, boards: boards, assignments: assignments}
}

func (g *Gate) IsAdmin(ctx context.Context, userID int) (bool, error) {
	u, err := g.lookup(ctx, userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.RoleID == model.RoleAdmin, nil
}

func (g *Gate) IsTeamLeader(ctx context.Context, userID int) (bool, error) {
	u, err := g.lookup(ctx, userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.RoleID == model.RoleTeamLeader, nil
}

// IsTeamMember reports whether the user belongs to the given team,
// whatever their role. A user without a team is a member of nothing.
func (g *Gate) IsTeamMember(ctx context.Context, userID, teamID int) (bool, error) {
	u, err := g.lookup(ctx, userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.TeamID != nil && *u.TeamID == teamID, nil
}

// IsBoardTeamMember resolves the board's team and delegates to team
// membership. A board without a team has no members.
func (g *Gate) IsBoardTeamMember(ctx context.Context, userID, boardID int) (bool, error) {
	b, err := g.boards.GetBoard(ctx, boardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if b.TeamID == nil {
		return false, nil
	}
	return g.IsTeamMember(ctx, userID, *b.TeamID)
}

// IsTaskAssignee is true iff an assignment exists for the pair.
func (g *Gate) IsTaskAssignee(ctx context.Context, userID, taskID int) (bool, error) {
	return g.assignments.AssignmentExists(ctx, userID, taskID)
}

func (g *Gate) lookup(ctx context.Context, userID int) (*model.User, error) {
	u, err := g.users.GetUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
