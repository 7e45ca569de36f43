package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orgboard/internal/model"
)

func newAdminService(m *memStore) *AdminService {
	return NewAdminService(m, m, m, testGate(m), testExec(), zap.NewNop())
}

func TestCreateUserAdminOnly(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)
	ctx := context.Background()

	nu := NewUser{Email: "fresh@acme.test", Password: "Secret!1", RoleID: model.RoleTeamMember, OrganizationID: 1}

	resp := svc.CreateUser(ctx, nu, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access Denied", resp.Message)

	resp = svc.CreateUser(ctx, nu, 1)
	require.True(t, resp.IsSuccess)
	require.NotNil(t, resp.Data)
	assert.NotZero(t, resp.Data.ID)
	assert.NotEqual(t, "Secret!1", resp.Data.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)

	nu := NewUser{Email: "dev@acme.test", Password: "Secret!1", RoleID: model.RoleTeamMember, OrganizationID: 1}
	resp := svc.CreateUser(context.Background(), nu, 1)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists", resp.Message)
}

func TestUpdateUser(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)
	ctx := context.Background()

	nu := NewUser{Email: "dev@acme.test", Password: "Secret!1", RoleID: model.RoleTeamMember, OrganizationID: 1, TeamID: intp(1)}

	resp := svc.UpdateUser(ctx, 3, nu, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.UpdateUser(ctx, 999, nu, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", resp.Message)

	// changing to an email another user holds
	taken := nu
	taken.Email = "lead@acme.test"
	resp = svc.UpdateUser(ctx, 3, taken, 1)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists", resp.Message)

	// keeping your own email is not a clash
	resp = svc.UpdateUser(ctx, 3, nu, 1)
	require.True(t, resp.IsSuccess)
}

func TestDeleteUserRestrictedByAssignments(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)
	ctx := context.Background()

	m.assigns[900] = &model.Assignment{ID: 900, UserID: 3, TaskID: 100}

	resp := svc.DeleteUser(ctx, 3, 1)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, stillThere := m.users[3]
	assert.True(t, stillThere)

	// unassign, then the delete goes through
	delete(m.assigns, 900)
	resp = svc.DeleteUser(ctx, 3, 1)
	require.True(t, resp.IsSuccess)
	_, exists := m.users[3]
	assert.False(t, exists)
}

func TestDeleteUserGates(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)
	ctx := context.Background()

	resp := svc.DeleteUser(ctx, 3, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.DeleteUser(ctx, 999, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", resp.Message)
}

func TestGetUserAndGetAllUsers(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)
	ctx := context.Background()

	resp := svc.GetUser(ctx, 3, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.GetUser(ctx, 999, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = svc.GetUser(ctx, 3, 1)
	require.True(t, resp.IsSuccess)
	assert.Equal(t, "dev@acme.test", resp.Data.Email)

	all := svc.GetAllUsers(ctx, 1)
	require.True(t, all.IsSuccess)
	assert.Len(t, all.Data, 4)

	denied := svc.GetAllUsers(ctx, 3)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
}

func TestUpdateOrganization(t *testing.T) {
	m := seededStore()
	svc := newAdminService(m)
	ctx := context.Background()

	resp := svc.UpdateOrganization(ctx, &model.Organization{ID: 1, Name: "Acme v2"}, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.UpdateOrganization(ctx, &model.Organization{ID: 999, Name: "Acme v2"}, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = svc.UpdateOrganization(ctx, &model.Organization{ID: 1, Name: "Acme v2"}, 1)
	require.True(t, resp.IsSuccess)
	assert.Equal(t, "Acme v2", m.orgs[1].Name)
}
