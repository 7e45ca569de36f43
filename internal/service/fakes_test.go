package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"orgboard/internal/access"
	"orgboard/internal/model"
	"orgboard/internal/resilience"
)

// memStore is an in-memory record store implementing every store
// interface the services consume. Absence is reported as
// pgx.ErrNoRows, matching the repositories.
type memStore struct {
	users   map[int]*model.User
	teams   map[int]*model.Team
	boards  map[int]*model.Board
	tasks   map[int]*model.Task
	assigns map[int]*model.Assignment
	orgs    map[int]*model.Organization
	nextID  int

	// when set, every call fails with this error
	err error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int]*model.User{},
		teams:   map[int]*model.Team{},
		boards:  map[int]*model.Board{},
		tasks:   map[int]*model.Task{},
		assigns: map[int]*model.Assignment{},
		orgs:    map[int]*model.Organization{},
		nextID:  100,
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

// --- UserStore ---

func (m *memStore) GetUser(_ context.Context, id int) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(_ context.Context, u *model.User) error {
	if m.err != nil {
		return m.err
	}
	u.ID = m.id()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) UpdateUser(_ context.Context, u *model.User) error {
	if m.err != nil {
		return m.err
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) DeleteUser(_ context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) SetTeam(_ context.Context, userID int, teamID *int) error {
	if m.err != nil {
		return m.err
	}
	if u, ok := m.users[userID]; ok {
		u.TeamID = teamID
	}
	return nil
}

func (m *memStore) ListTeamMembers(_ context.Context, teamID int) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.User{}
	for _, u := range m.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) ListAll(_ context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

// --- TeamStore ---

func (m *memStore) GetTeam(_ context.Context, id int) (*model.Team, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.teams[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) CreateTeam(_ context.Context, t *model.Team) error {
	if m.err != nil {
		return m.err
	}
	t.ID = m.id()
	cp := *t
	m.teams[t.ID] = &cp
	return nil
}

func (m *memStore) UpdateTeamName(_ context.Context, t *model.Team) error {
	if m.err != nil {
		return m.err
	}
	cp := *t
	m.teams[t.ID] = &cp
	return nil
}

func (m *memStore) DeleteTeam(_ context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	delete(m.teams, id)
	return nil
}

// --- BoardStore ---

func (m *memStore) GetBoard(_ context.Context, id int) (*model.Board, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.boards[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) CreateBoard(_ context.Context, b *model.Board) error {
	if m.err != nil {
		return m.err
	}
	b.ID = m.id()
	cp := *b
	m.boards[b.ID] = &cp
	return nil
}

func (m *memStore) UpdateBoardName(_ context.Context, b *model.Board) error {
	if m.err != nil {
		return m.err
	}
	cp := *b
	m.boards[b.ID] = &cp
	return nil
}

func (m *memStore) ListByTeam(_ context.Context, teamID int) ([]model.Board, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Board{}
	for _, b := range m.boards {
		if b.TeamID != nil && *b.TeamID == teamID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memStore) DeleteBoardWithTasks(_ context.Context, boardID int) error {
	if m.err != nil {
		return m.err
	}
	for id, t := range m.tasks {
		if t.BoardID == boardID {
			for aid, a := range m.assigns {
				if a.TaskID == id {
					delete(m.assigns, aid)
				}
			}
			delete(m.tasks, id)
		}
	}
	delete(m.boards, boardID)
	return nil
}

// --- TaskStore ---

func (m *memStore) GetTask(_ context.Context, id int) (*model.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) CreateTask(_ context.Context, t *model.Task) error {
	if m.err != nil {
		return m.err
	}
	t.ID = m.id()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memStore) UpdateTask(_ context.Context, t *model.Task) error {
	if m.err != nil {
		return m.err
	}
	if existing, ok := m.tasks[t.ID]; ok {
		status := existing.StatusID
		cp := *t
		cp.StatusID = status
		m.tasks[t.ID] = &cp
	}
	return nil
}

func (m *memStore) SetStatus(_ context.Context, taskID, statusID int) error {
	if m.err != nil {
		return m.err
	}
	if t, ok := m.tasks[taskID]; ok {
		t.StatusID = statusID
	}
	return nil
}

func (m *memStore) DeleteTask(_ context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	for aid, a := range m.assigns {
		if a.TaskID == id {
			delete(m.assigns, aid)
		}
	}
	delete(m.tasks, id)
	return nil
}

func (m *memStore) ListByBoard(_ context.Context, boardID int) ([]model.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []model.Task{}
	for _, t := range m.tasks {
		if t.BoardID == boardID {
			out = append(out, *t)
		}
	}
	return out, nil
}

// --- AssignmentStore ---

func (m *memStore) CreateAssignment(_ context.Context, a *model.Assignment) error {
	if m.err != nil {
		return m.err
	}
	a.ID = m.id()
	cp := *a
	m.assigns[a.ID] = &cp
	return nil
}

func (m *memStore) AssignmentExists(_ context.Context, userID, taskID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, a := range m.assigns {
		if a.UserID == userID && a.TaskID == taskID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UserHasAssignments(_ context.Context, userID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, a := range m.assigns {
		if a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// --- OrganizationStore ---

func (m *memStore) GetOrganization(_ context.Context, id int) (*model.Organization, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) CreateOrganization(_ context.Context, o *model.Organization) error {
	if m.err != nil {
		return m.err
	}
	o.ID = m.id()
	cp := *o
	m.orgs[o.ID] = &cp
	return nil
}

func (m *memStore) UpdateOrganization(_ context.Context, o *model.Organization) error {
	if m.err != nil {
		return m.err
	}
	cp := *o
	m.orgs[o.ID] = &cp
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ any) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

func intp(v int) *int { return &v }

// seeded fixture matching the canonical dataset: admin 1 (no team),
// leader 2 on team 1, member 3 on team 1, member 4 on team 2.
func seededStore() *memStore {
	m := newMemStore()
	m.orgs[1] = &model.Organization{ID: 1, Name: "Acme"}
	m.teams[1] = &model.Team{ID: 1, Name: "team 1"}
	m.teams[2] = &model.Team{ID: 2, Name: "team 2"}
	m.users[1] = &model.User{ID: 1, Email: "admin@acme.test", RoleID: model.RoleAdmin, OrganizationID: 1}
	m.users[2] = &model.User{ID: 2, Email: "lead@acme.test", RoleID: model.RoleTeamLeader, OrganizationID: 1, TeamID: intp(1)}
	m.users[3] = &model.User{ID: 3, Email: "dev@acme.test", RoleID: model.RoleTeamMember, OrganizationID: 1, TeamID: intp(1)}
	m.users[4] = &model.User{ID: 4, Email: "dev2@acme.test", RoleID: model.RoleTeamMember, OrganizationID: 1, TeamID: intp(2)}
	return m
}

func testGate(m *memStore) *access.Gate {
	return access.NewGate(m, m, m)
}

func testExec() *resilience.Executor {
	return resilience.NewWithBackoff(zap.NewNop())
}
