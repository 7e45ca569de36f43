package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"orgboard/internal/access"
	"orgboard/internal/model"
	"orgboard/internal/mq"
	"orgboard/internal/resilience"
	"orgboard/internal/response"
)

// TeamService owns the team lifecycle and membership assignment.
type TeamService struct {
	teams  TeamStore
	users  UserStore
	gate   *access.Gate
	exec   *resilience.Executor
	events EventPublisher
	logger *zap.Logger
}

func NewTeamService(teams TeamStore, users UserStore, gate *access.Gate, exec *resilience.Executor, events EventPublisher, logger *zap.Logger) *TeamService {
	return &TeamService{
		teams:  teams,
		users:  users,
		gate:   gate,
		exec:   exec,
		events: events,
		logger: logger,
	}
}

// CreateTeam persists a new team. Admin only.
func (s *TeamService) CreateTeam(ctx context.Context, name string, callerID int) response.Response[*model.Team] {
	return resilience.Once(ctx, s.exec, "team.create", func(ctx context.Context) (response.Response[*model.Team], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[*model.Team]{}, err
		}
		if !admin {
			return response.Fail[*model.Team]("Access Denied", http.StatusForbidden), nil
		}

		team := &model.Team{Name: name}
		if err := s.teams.CreateTeam(ctx, team); err != nil {
			return response.Response[*model.Team]{}, err
		}

		s.publish(mq.EventTeamCreated, mq.TeamCreatedPayload{TeamID: team.ID, TeamName: team.Name})
		s.logger.Info("Team created", zap.Int("team_id", team.ID), zap.Int("caller_id", callerID))
		return response.OkMsg(team, "Team created successfully."), nil
	})
}

// UpdateTeamName renames an existing team. Leader only.
func (s *TeamService) UpdateTeamName(ctx context.Context, team *model.Team, callerID int) response.Response[*model.Team] {
	return resilience.Do(ctx, s.exec, "team.update", func(ctx context.Context) (response.Response[*model.Team], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[*model.Team]{}, err
		}
		if !leader {
			return response.Fail[*model.Team]("Access Denied", http.StatusForbidden), nil
		}

		existing, err := s.teams.GetTeam(ctx, team.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Team]("Team not found.", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Team]{}, err
		}

		existing.Name = team.Name
		if err := s.teams.UpdateTeamName(ctx, existing); err != nil {
			return response.Response[*model.Team]{}, err
		}
		return response.OkMsg(existing, "Team updated successfully."), nil
	})
}

// DeleteTeam removes a team. Admin only.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "team.delete", func(ctx context.Context) (response.Response[bool], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !admin {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.teams.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("Team not found.", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if err := s.teams.DeleteTeam(ctx, teamID); err != nil {
			return response.Response[bool]{}, err
		}
		s.logger.Info("Team deleted", zap.Int("team_id", teamID), zap.Int("caller_id", callerID))
		return response.OkMsg(true, "Team deleted successfully."), nil
	})
}

// GetTeamMembers lists the team's users. Open to that team's leader and
// members, and to admins.
func (s *TeamService) GetTeamMembers(ctx context.Context, teamID, callerID int) response.Response[[]model.User] {
	return resilience.Do(ctx, s.exec, "team.members", func(ctx context.Context) (response.Response[[]model.User], error) {
		member, err := s.gate.IsTeamMember(ctx, callerID, teamID)
		if err != nil {
			return response.Response[[]model.User]{}, err
		}
		if !member {
			admin, err := s.gate.IsAdmin(ctx, callerID)
			if err != nil {
				return response.Response[[]model.User]{}, err
			}
			if !admin {
				return response.Fail[[]model.User]("Access Denied", http.StatusForbidden), nil
			}
		}

		members, err := s.users.ListTeamMembers(ctx, teamID)
		if err != nil {
			return response.Response[[]model.User]{}, err
		}
		if len(members) == 0 {
			return response.Fail[[]model.User]("No members found in this team.", http.StatusNotFound), nil
		}
		return response.OkMsg(members, "Members retrieved successfully."), nil
	})
}

// AssignUserToTeam adds a user to a team. Admin only; a user already on
// a team is never silently reassigned.
func (s *TeamService) AssignUserToTeam(ctx context.Context, teamID, userID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "team.assign_user", func(ctx context.Context) (response.Response[bool], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !admin {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.teams.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("No such team.", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		user, err := s.users.GetUser(ctx, userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[bool]("User not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[bool]{}, err
		}

		if user.TeamID != nil {
			return response.Fail[bool]("User is already assigned to a team.", http.StatusBadRequest), nil
		}

		if err := s.users.SetTeam(ctx, userID, &teamID); err != nil {
			return response.Response[bool]{}, err
		}
		s.logger.Info("User assigned to team",
			zap.Int("team_id", teamID),
			zap.Int("user_id", userID),
			zap.Int("caller_id", callerID),
		)
		return response.OkMsg(true, "User assigned to team successfully."), nil
	})
}

// RemoveUserFromTeam clears a user's team membership. Admin only.
func (s *TeamService) RemoveUserFromTeam(ctx context.Context, teamID, userID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "team.remove_user", func(ctx context.Context) (response.Response[bool], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !admin {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.teams.GetTeam(ctx, teamID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("No such team.", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if _, err := s.users.GetUser(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("User not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if err := s.users.SetTeam(ctx, userID, nil); err != nil {
			return response.Response[bool]{}, err
		}
		return response.OkMsg(true, "User removed from team successfully."), nil
	})
}

func (s *TeamService) publish(routingKey string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, payload); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
