package model

// Status IDs as seeded in the statuses table. A new task always starts
// at StatusToDo. StatusInProgress is part of the catalog but no
// transition writes it.
const (
	StatusToDo       = 1
	StatusDone       = 2
	StatusConfirmed  = 3
	StatusInProgress = 4
)

type Task struct {
	ID          int      `json:"id"`
	BoardID     int      `json:"board_id"`
	StatusID    int      `json:"status_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Estimation  *float64 `json:"estimation,omitempty"`
	Headcount   *float64 `json:"headcount,omitempty"`
}

// Assignment makes a user responsible for a task.
type Assignment struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	TaskID int `json:"task_id"`
}
