package mq

// Routing keys for workflow events.
const (
	EventTeamCreated       = "team.created"
	EventBoardDeleted      = "board.deleted"
	EventTaskAssigned      = "task.assigned"
	EventTaskStatusChanged = "task.status_changed"
)

type TeamCreatedPayload struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
}

type BoardDeletedPayload struct {
	BoardID int  `json:"board_id"`
	TeamID  *int `json:"team_id,omitempty"`
}

type TaskAssignedPayload struct {
	TaskID int `json:"task_id"`
	UserID int `json:"user_id"`
}

type TaskStatusChangedPayload struct {
	TaskID   int `json:"task_id"`
	StatusID int `json:"status_id"`
}
