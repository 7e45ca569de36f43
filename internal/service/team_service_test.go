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

func newTeamService(m *memStore) (*TeamService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewTeamService(m, m, testGate(m), testExec(), pub, zap.NewNop()), pub
}

func TestCreateTeamAdminOnly(t *testing.T) {
	m := seededStore()
	svc, pub := newTeamService(m)
	ctx := context.Background()

	for _, callerID := range []int{2, 3, 99} {
		resp := svc.CreateTeam(ctx, "new team", callerID)
		assert.False(t, resp.IsSuccess)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Access Denied", resp.Message)
	}

	resp := svc.CreateTeam(ctx, "new team", 1)
	require.True(t, resp.IsSuccess)
	require.NotNil(t, resp.Data)
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, "new team", resp.Data.Name)
	assert.Equal(t, []string{"team.created"}, pub.keys)
}

func TestUpdateTeamName(t *testing.T) {
	m := seededStore()
	svc, _ := newTeamService(m)
	ctx := context.Background()

	// leader gate
	resp := svc.UpdateTeamName(ctx, &model.Team{ID: 1, Name: "renamed"}, 3)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// unknown team
	resp = svc.UpdateTeamName(ctx, &model.Team{ID: 999, Name: "renamed"}, 2)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Team not found.", resp.Message)

	resp = svc.UpdateTeamName(ctx, &model.Team{ID: 1, Name: "renamed"}, 2)
	require.True(t, resp.IsSuccess)
	assert.Equal(t, "renamed", m.teams[1].Name)
}

func TestDeleteTeam(t *testing.T) {
	m := seededStore()
	svc, _ := newTeamService(m)
	ctx := context.Background()

	resp := svc.DeleteTeam(ctx, 1, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.DeleteTeam(ctx, 999, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Team not found.", resp.Message)

	resp = svc.DeleteTeam(ctx, 2, 1)
	require.True(t, resp.IsSuccess)
	_, exists := m.teams[2]
	assert.False(t, exists)
}

func TestGetTeamMembers(t *testing.T) {
	m := seededStore()
	svc, _ := newTeamService(m)
	ctx := context.Background()

	// member of another team is denied
	resp := svc.GetTeamMembers(ctx, 1, 4)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access Denied", resp.Message)

	// leader, member and admin can all read
	for _, callerID := range []int{1, 2, 3} {
		resp = svc.GetTeamMembers(ctx, 1, callerID)
		require.True(t, resp.IsSuccess, "caller %d", callerID)
		assert.Len(t, resp.Data, 2)
	}

	// empty team reads as not found
	m.teams[3] = &model.Team{ID: 3, Name: "empty"}
	resp = svc.GetTeamMembers(ctx, 3, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No members found in this team.", resp.Message)
}

func TestAssignUserToTeam(t *testing.T) {
	m := seededStore()
	svc, _ := newTeamService(m)
	ctx := context.Background()

	// free agent to place
	m.users[5] = &model.User{ID: 5, Email: "new@acme.test", RoleID: model.RoleTeamMember, OrganizationID: 1}

	resp := svc.AssignUserToTeam(ctx, 1, 5, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.AssignUserToTeam(ctx, 999, 5, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No such team.", resp.Message)

	resp = svc.AssignUserToTeam(ctx, 1, 999, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", resp.Message)

	resp = svc.AssignUserToTeam(ctx, 1, 5, 1)
	require.True(t, resp.IsSuccess)
	require.NotNil(t, m.users[5].TeamID)
	assert.Equal(t, 1, *m.users[5].TeamID)
}

// An already-teamed user is never silently reassigned.
func TestAssignUserToTeamConflict(t *testing.T) {
	m := seededStore()
	svc, _ := newTeamService(m)
	ctx := context.Background()

	resp := svc.AssignUserToTeam(ctx, 2, 3, 1)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User is already assigned to a team.", resp.Message)
	assert.Equal(t, 1, *m.users[3].TeamID)
}

func TestRemoveUserFromTeam(t *testing.T) {
	m := seededStore()
	svc, _ := newTeamService(m)
	ctx := context.Background()

	resp := svc.RemoveUserFromTeam(ctx, 1, 3, 2)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = svc.RemoveUserFromTeam(ctx, 999, 3, 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = svc.RemoveUserFromTeam(ctx, 1, 3, 1)
	require.True(t, resp.IsSuccess)
	assert.Nil(t, m.users[3].TeamID)
}
