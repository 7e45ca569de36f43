package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"orgboard/internal/access"
	"orgboard/internal/model"
	"orgboard/internal/resilience"
	"orgboard/internal/response"
	"orgboard/internal/util"
)

// NewUser carries the fields an admin supplies when creating or
// rewriting a user.
type NewUser struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RoleID         int    `json:"role_id"`
	OrganizationID int    `json:"organization_id"`
	TeamID         *int   `json:"team_id,omitempty"`
}

// AdminService owns user and organization management. Every operation
// is Admin only.
type AdminService struct {
	users       UserStore
	orgs        OrganizationStore
	assignments AssignmentStore
	gate        *access.Gate
	exec        *resilience.Executor
	logger      *zap.Logger
}

func NewAdminService(users UserStore, orgs OrganizationStore, assignments AssignmentStore, gate *access.Gate, exec *resilience.Executor, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:       users,
		orgs:        orgs,
		assignments: assignments,
		gate:        gate,
		exec:        exec,
		logger:      logger,
	}
}

func (s *AdminService) CreateUser(ctx context.Context, nu NewUser, callerID int) response.Response[*model.User] {
	return resilience.Once(ctx, s.exec, "user.create", func(ctx context.Context) (response.Response[*model.User], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[*model.User]{}, err
		}
		if !admin {
			return response.Fail[*model.User]("Access Denied", http.StatusForbidden), nil
		}

		exists, err := s.users.EmailExists(ctx, nu.Email)
		if err != nil {
			return response.Response[*model.User]{}, err
		}
		if exists {
			return response.Fail[*model.User]("Email already exists", http.StatusBadRequest), nil
		}

		hash, err := util.HashPassword(nu.Password)
		if err != nil {
			return response.Response[*model.User]{}, err
		}

		user := &model.User{
			Email:          nu.Email,
			PasswordHash:   hash,
			RoleID:         nu.RoleID,
			OrganizationID: nu.OrganizationID,
			TeamID:         nu.TeamID,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return response.Response[*model.User]{}, err
		}
		s.logger.Info("User created", zap.Int("user_id", user.ID), zap.Int("caller_id", callerID))
		return response.OkMsg(user, "User created successfully"), nil
	})
}

func (s *AdminService) UpdateUser(ctx context.Context, userID int, nu NewUser, callerID int) response.Response[*model.User] {
	return resilience.Do(ctx, s.exec, "user.update", func(ctx context.Context) (response.Response[*model.User], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[*model.User]{}, err
		}
		if !admin {
			return response.Fail[*model.User]("Access Denied", http.StatusForbidden), nil
		}

		existing, err := s.users.GetUser(ctx, userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.User]("User not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.User]{}, err
		}

		// a new email must not collide with another user's
		if nu.Email != existing.Email {
			exists, err := s.users.EmailExists(ctx, nu.Email)
			if err != nil {
				return response.Response[*model.User]{}, err
			}
			if exists {
				return response.Fail[*model.User]("Email already exists", http.StatusBadRequest), nil
			}
		}

		hash, err := util.HashPassword(nu.Password)
		if err != nil {
			return response.Response[*model.User]{}, err
		}

		existing.Email = nu.Email
		existing.PasswordHash = hash
		existing.RoleID = nu.RoleID
		existing.TeamID = nu.TeamID

		if err := s.users.UpdateUser(ctx, existing); err != nil {
			return response.Response[*model.User]{}, err
		}
		return response.OkMsg(existing, "User updated successfully"), nil
	})
}

// DeleteUser removes a user. A user still holding task assignments is
// not deleted; they must be unassigned first.
func (s *AdminService) DeleteUser(ctx context.Context, userID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "user.delete", func(ctx context.Context) (response.Response[bool], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !admin {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.users.GetUser(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("User not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		assigned, err := s.assignments.UserHasAssignments(ctx, userID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if assigned {
			return response.Fail[bool]("User still has assigned tasks.", http.StatusBadRequest), nil
		}

		if err := s.users.DeleteUser(ctx, userID); err != nil {
			return response.Response[bool]{}, err
		}
		s.logger.Info("User deleted", zap.Int("user_id", userID), zap.Int("caller_id", callerID))
		return response.OkMsg(true, "User deleted successfully"), nil
	})
}

func (s *AdminService) GetUser(ctx context.Context, userID, callerID int) response.Response[*model.User] {
	return resilience.Do(ctx, s.exec, "user.get", func(ctx context.Context) (response.Response[*model.User], error) {
		user, err := s.users.GetUser(ctx, userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.User]("User not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.User]{}, err
		}

		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[*model.User]{}, err
		}
		if !admin {
			return response.Fail[*model.User]("Access Denied", http.StatusForbidden), nil
		}

		return response.Ok(user), nil
	})
}

func (s *AdminService) GetAllUsers(ctx context.Context, callerID int) response.Response[[]model.User] {
	return resilience.Do(ctx, s.exec, "user.list", func(ctx context.Context) (response.Response[[]model.User], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[[]model.User]{}, err
		}
		if !admin {
			return response.Fail[[]model.User]("Access Denied", http.StatusForbidden), nil
		}

		users, err := s.users.ListAll(ctx)
		if err != nil {
			return response.Response[[]model.User]{}, err
		}
		return response.Ok(users), nil
	})
}

func (s *AdminService) UpdateOrganization(ctx context.Context, org *model.Organization, callerID int) response.Response[*model.Organization] {
	return resilience.Do(ctx, s.exec, "org.update", func(ctx context.Context) (response.Response[*model.Organization], error) {
		admin, err := s.gate.IsAdmin(ctx, callerID)
		if err != nil {
			return response.Response[*model.Organization]{}, err
		}
		if !admin {
			return response.Fail[*model.Organization]("Access Denied", http.StatusForbidden), nil
		}

		existing, err := s.orgs.GetOrganization(ctx, org.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Organization]("Organization not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Organization]{}, err
		}

		existing.Name = org.Name
		if err := s.orgs.UpdateOrganization(ctx, existing); err != nil {
			return response.Response[*model.Organization]{}, err
		}
		return response.OkMsg(existing, "Organization updated successfully"), nil
	})
}
