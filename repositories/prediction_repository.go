package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jamalben22/stadiumport/brackets"
	"github.com/jamalben22/stadiumport/models"
)

var (
	ErrPredictionNotFound     = errors.New("prediction not found")
	ErrPredictionNameConflict = errors.New("prediction name already taken")
)

type PredictionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, p *models.Prediction) error
	GetByPublicID(ctx context.Context, exec SQLExecutor, publicID string) (*models.Prediction, error)
	ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]*models.Prediction, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// The three bracket maps are stored as JSONB so the persisted document is
// exactly the externally-visible representation and round-trips losslessly.
func (r *postgresPredictionRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Prediction) error {
	executor := r.getExecutor(exec)

	standingsJSON, err := json.Marshal(p.GroupStandings)
	if err != nil {
		return fmt.Errorf("failed to marshal group standings: %w", err)
	}
	thirdsJSON, err := json.Marshal(p.ThirdPlacePicks)
	if err != nil {
		return fmt.Errorf("failed to marshal third-place picks: %w", err)
	}
	picksJSON, err := json.Marshal(p.KnockoutPicks)
	if err != nil {
		return fmt.Errorf("failed to marshal knockout picks: %w", err)
	}

	query := `
		INSERT INTO predictions
		    (public_id, name, email, group_standings, third_place_picks, knockout_picks, champion_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	err = executor.QueryRowContext(ctx, query,
		p.PublicID, p.Name, p.Email, standingsJSON, thirdsJSON, picksJSON, p.ChampionID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrPredictionNameConflict
		}
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

func (r *postgresPredictionRepository) GetByPublicID(ctx context.Context, exec SQLExecutor, publicID string) (*models.Prediction, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, public_id, name, email, group_standings, third_place_picks, knockout_picks, champion_id, created_at
		FROM predictions
		WHERE public_id = $1`

	p, err := scanPrediction(executor.QueryRowContext(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to get prediction %s: %w", publicID, err)
	}
	return p, nil
}

func (r *postgresPredictionRepository) ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]*models.Prediction, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, public_id, name, email, group_standings, third_place_picks, knockout_picks, champion_id, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := executor.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prediction rows: %w", err)
	}
	return predictions, nil
}

func scanPrediction(row rowScanner) (*models.Prediction, error) {
	var (
		p             models.Prediction
		standingsJSON []byte
		thirdsJSON    []byte
		picksJSON     []byte
	)
	err := row.Scan(&p.ID, &p.PublicID, &p.Name, &p.Email,
		&standingsJSON, &thirdsJSON, &picksJSON, &p.ChampionID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	p.GroupStandings = make(brackets.GroupStandings)
	if err := json.Unmarshal(standingsJSON, &p.GroupStandings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal group standings: %w", err)
	}
	if err := json.Unmarshal(thirdsJSON, &p.ThirdPlacePicks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal third-place picks: %w", err)
	}
	p.KnockoutPicks = make(brackets.PickStore)
	if err := json.Unmarshal(picksJSON, &p.KnockoutPicks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal knockout picks: %w", err)
	}
	return &p, nil
}

// isUniqueViolation matches Postgres error code 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
