package model

// Role IDs as seeded in the roles table.
const (
	RoleAdmin      = 1
	RoleTeamLeader = 2
	RoleTeamMember = 3
)

type User struct {
	ID             int    `json:"id"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	RoleID         int    `json:"role_id"`
	OrganizationID int    `json:"organization_id"`
	TeamID         *int   `json:"team_id,omitempty"`
}
