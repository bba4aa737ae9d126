package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// TeamRepository implements persistence.TeamRepository on SQLite. Meetings
// live in a child table keyed by team id so an append is a plain insert; the
// embedded list is reassembled in insertion order on read.
type TeamRepository struct {
	db *DB
}

// NewTeamRepository creates a SQLite backed team repository.
func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateTeam inserts a new team with an empty meeting list.
func (r *TeamRepository) CreateTeam(ctx context.Context, team persistence.Team) error {
	now := time.Now().UTC()
	if team.CreatedAt.IsZero() {
		team.CreatedAt = now
	}
	team.UpdatedAt = now

	_, err := r.db.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		team.ID,
		team.Name,
		team.CreatedAt.Format(time.RFC3339),
		team.UpdatedAt.Format(time.RFC3339),
	)
	return mapError(err)
}

// GetTeam retrieves a team and its meeting list by id.
func (r *TeamRepository) GetTeam(ctx context.Context, id string) (persistence.Team, error) {
	row := r.db.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM teams WHERE id = ?`, id)

	team, err := scanTeam(row)
	if err != nil {
		return persistence.Team{}, mapError(err)
	}

	team.Meetings, err = r.teamMeetings(ctx, team.ID)
	if err != nil {
		return persistence.Team{}, err
	}
	return team, nil
}

// ListTeams returns every team with its meeting list, ordered by creation.
func (r *TeamRepository) ListTeams(ctx context.Context) ([]persistence.Team, error) {
	rows, err := r.db.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM teams ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var teams []persistence.Team
	for rows.Next() {
		var (
			team      persistence.Team
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&team.ID, &team.Name, &createdAt, &updatedAt); err != nil {
			return nil, mapError(err)
		}
		team.CreatedAt, team.UpdatedAt, err = parseTimestamps(createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	for i := range teams {
		teams[i].Meetings, err = r.teamMeetings(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// AppendMeeting atomically appends one meeting record to a team's list.
// The insert never touches existing rows, so concurrent appends from
// different clients all survive.
func (r *TeamRepository) AppendMeeting(ctx context.Context, teamID string, meeting persistence.Meeting) error {
	if meeting.Token == "" {
		return errors.New("sqlite: meeting token must not be empty")
	}

	return r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM teams WHERE id = ?`, teamID).Scan(&exists); err != nil {
			return mapError(err)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO meetings (team_id, name, agenda, time, token, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			teamID,
			meeting.Name,
			meeting.Agenda,
			meeting.Time,
			meeting.Token,
			time.Now().UTC().Format(time.RFC3339),
		)
		return mapError(err)
	})
}

func (r *TeamRepository) teamMeetings(ctx context.Context, teamID string) ([]persistence.Meeting, error) {
	rows, err := r.db.db.QueryContext(ctx, `
		SELECT name, agenda, time, token FROM meetings WHERE team_id = ? ORDER BY seq`, teamID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		var meeting persistence.Meeting
		if err := rows.Scan(&meeting.Name, &meeting.Agenda, &meeting.Time, &meeting.Token); err != nil {
			return nil, mapError(err)
		}
		meetings = append(meetings, meeting)
	}
	return meetings, mapError(rows.Err())
}

func scanTeam(row *sql.Row) (persistence.Team, error) {
	var (
		team      persistence.Team
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&team.ID, &team.Name, &createdAt, &updatedAt); err != nil {
		return persistence.Team{}, err
	}
	created, updated, err := parseTimestamps(createdAt, updatedAt)
	if err != nil {
		return persistence.Team{}, err
	}
	team.CreatedAt, team.UpdatedAt = created, updated
	return team, nil
}
