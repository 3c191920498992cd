// internal/model/connection.go
package model

import "time"

// SlackConnection is the credential bundle for one connected workspace.
// BotToken is stored base64-encoded; the delivery adapter decodes it.
type SlackConnection struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	TeamID    string    `db:"team_id" json:"team_id"`
	TeamName  string    `db:"team_name" json:"team_name"`
	BotToken  string    `db:"bot_token" json:"-"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
