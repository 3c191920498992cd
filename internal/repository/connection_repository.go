package repository

import (
	"database/sql"

	"github.com/slackping/slackping-backend/internal/model"
)

// ConnectionRepositoryInterface defines the connection lookups the
// scheduler consumes. Connections are created and deactivated by the
// out-of-scope OAuth flow; the scheduler only reads them.
type ConnectionRepositoryInterface interface {
	GetActiveByID(id string) (*model.SlackConnection, error)
}

type ConnectionRepository struct {
	DB *sql.DB
}

// GetActiveByID fetches a connection by ID, only if it is active.
// Returns nil (no error) when the connection is missing or deactivated.
func (r *ConnectionRepository) GetActiveByID(id string) (*model.SlackConnection, error) {
	query := `
        SELECT id, user_id, team_id, team_name, bot_token, is_active, created_at
        FROM slack_connections
        WHERE id = $1 AND is_active = true
    `
	var c model.SlackConnection
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.UserID, &c.TeamID, &c.TeamName,
		&c.BotToken, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

var _ ConnectionRepositoryInterface = (*ConnectionRepository)(nil)
