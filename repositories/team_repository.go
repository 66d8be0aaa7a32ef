package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jamalben22/stadiumport/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	ListAll(ctx context.Context, exec SQLExecutor) ([]*models.Team, error)
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	UpdateFlagKey(ctx context.Context, exec SQLExecutor, id string, flagKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, name, region, group_letter, primary_color, secondary_color, flag_key`

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Region, &t.Group, &t.PrimaryColor, &t.SecondaryColor, &t.FlagKey)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	query := fmt.Sprintf(`SELECT %s FROM teams ORDER BY group_letter, name`, teamColumns)

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE id = $1`, teamColumns)

	t, err := scanTeam(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTeamRepository) UpdateFlagKey(ctx context.Context, exec SQLExecutor, id string, flagKey *string) error {
	executor := r.getExecutor(exec)
	query := `UPDATE teams SET flag_key = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, flagKey, id)
	if err != nil {
		return fmt.Errorf("failed to update flag key for team %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
