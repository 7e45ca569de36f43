package model

type Board struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	TeamID *int   `json:"team_id,omitempty"`
}
