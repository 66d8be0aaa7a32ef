package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jamalben22/stadiumport/brackets"
	"github.com/jamalben22/stadiumport/models"
	"github.com/jamalben22/stadiumport/repositories"
)

// BracketState is the full render-ready snapshot of one session, returned
// from every read and pushed to the session's websocket room on mutation.
type BracketState struct {
	SessionID string                  `json:"session_id"`
	Rounds    []brackets.RoundSummary `json:"rounds"`
	Complete  bool                    `json:"complete"`
	Champion  *string                 `json:"champion_id,omitempty"`
}

// SavedPrediction couples a persisted prediction with the bracket state it
// reproduces, for the public prediction view.
type SavedPrediction struct {
	Prediction *models.Prediction      `json:"prediction"`
	Rounds     []brackets.RoundSummary `json:"rounds"`
	Teams      []*models.Team          `json:"teams"`
}

type BracketService interface {
	StartSession(ctx context.Context, standings brackets.GroupStandings, thirdPlacePicks []string) (*BracketState, error)
	GetState(ctx context.Context, sessionID string) (*BracketState, error)
	RecordWinner(ctx context.Context, sessionID, matchID, winnerID string) (*BracketState, error)
	ClearPicks(ctx context.Context, sessionID string) (*BracketState, error)
	Summary(ctx context.Context, sessionID string) ([]brackets.RoundSummary, error)
	SavePrediction(ctx context.Context, sessionID, name, email string) (*models.Prediction, error)
	GetSavedPrediction(ctx context.Context, publicID string) (*SavedPrediction, error)
	ListRecentPredictions(ctx context.Context, limit int) ([]*models.Prediction, error)
}

// session is one user's in-progress bracket. The core itself is synchronous
// and single-writer; the mutex only shields it from the HTTP server's
// concurrent readers.
type session struct {
	mu              sync.Mutex
	bracket         *brackets.Bracket
	standings       brackets.GroupStandings
	thirdPlacePicks []string
	createdAt       time.Time
}

type bracketService struct {
	teamServ       TeamService
	predictionRepo repositories.PredictionRepository
	mailer         MailService
	hub            *brackets.Hub
	logger         *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewBracketService(
	teamServ TeamService,
	predictionRepo repositories.PredictionRepository,
	mailer MailService,
	hub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		teamServ:       teamServ,
		predictionRepo: predictionRepo,
		mailer:         mailer,
		hub:            hub,
		logger:         logger,
		sessions:       make(map[string]*session),
	}
}

func (s *bracketService) StartSession(ctx context.Context, standings brackets.GroupStandings, thirdPlacePicks []string) (*BracketState, error) {
	if err := s.validateInputs(standings, thirdPlacePicks); err != nil {
		return nil, err
	}

	b, err := brackets.New(standings, thirdPlacePicks)
	if err != nil {
		return nil, fmt.Errorf("failed to build bracket: %w", err)
	}

	sessionID := uuid.NewString()
	sess := &session{
		bracket:         b,
		standings:       standings,
		thirdPlacePicks: thirdPlacePicks,
		createdAt:       time.Now(),
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	s.logger.Info("bracket session started", slog.String("session_id", sessionID))
	return s.snapshot(sessionID, sess), nil
}

// validateInputs checks the standings shape and that every referenced team
// exists in the catalog. Malformed input never reaches the core.
func (s *bracketService) validateInputs(standings brackets.GroupStandings, thirdPlacePicks []string) error {
	if err := brackets.ValidateInputs(standings, thirdPlacePicks); err != nil {
		return fmt.Errorf("%w: %v", ErrStandingsInvalid, err)
	}
	for group, order := range standings {
		for _, teamID := range order {
			if teamID == "" {
				continue // undecided placing, rendered as awaiting
			}
			if _, err := s.teamServ.GetByID(teamID); err != nil {
				return fmt.Errorf("%w: unknown team %s in group %s", ErrStandingsInvalid, teamID, group)
			}
		}
	}
	return nil
}

func (s *bracketService) getSession(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *bracketService) snapshot(sessionID string, sess *session) *BracketState {
	state := &BracketState{
		SessionID: sessionID,
		Rounds:    sess.bracket.Summary(),
		Complete:  sess.bracket.Complete(),
	}
	if champion, ok := sess.bracket.Champion(); ok {
		state.Champion = &champion
	}
	return state
}

func (s *bracketService) GetState(ctx context.Context, sessionID string) (*BracketState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sessionID, sess), nil
}

// RecordWinner is the single mutating command of the game. The cascade and
// third-place revalidation run inside the core before the call returns, so
// the broadcast state is always internally consistent.
func (s *bracketService) RecordWinner(ctx context.Context, sessionID, matchID, winnerID string) (*BracketState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.bracket.RecordWinner(matchID, winnerID); err != nil {
		if errors.Is(err, brackets.ErrMatchNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	state := s.snapshot(sessionID, sess)
	s.hub.BroadcastToSession(sessionID, brackets.EventPickRecorded, state)
	return state, nil
}

func (s *bracketService) ClearPicks(ctx context.Context, sessionID string) (*BracketState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.bracket.ClearPicks()
	state := s.snapshot(sessionID, sess)
	s.hub.BroadcastToSession(sessionID, brackets.EventPicksCleared, state)
	return state, nil
}

func (s *bracketService) Summary(ctx context.Context, sessionID string) ([]brackets.RoundSummary, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.bracket.Summary(), nil
}

// SavePrediction persists a completed bracket as the canonical JSON document
// and notifies the player. Recording the champion is the completion trigger;
// an incomplete bracket cannot be saved.
func (s *bracketService) SavePrediction(ctx context.Context, sessionID, name, email string) (*models.Prediction, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPredictionNameEmpty
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	champion, ok := sess.bracket.Champion()
	if !ok {
		return nil, ErrBracketIncomplete
	}

	prediction := &models.Prediction{
		PublicID:        uuid.NewString(),
		Name:            name,
		Email:           email,
		GroupStandings:  sess.standings,
		ThirdPlacePicks: sess.thirdPlacePicks,
		KnockoutPicks:   sess.bracket.Picks(),
		ChampionID:      champion,
	}

	if err := s.predictionRepo.Create(ctx, nil, prediction); err != nil {
		if errors.Is(err, repositories.ErrPredictionNameConflict) {
			return nil, ErrPredictionNameConflict
		}
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}

	s.hub.BroadcastToSession(sessionID, brackets.EventBracketSaved, map[string]string{
		"public_id":   prediction.PublicID,
		"champion_id": champion,
	})

	if email != "" {
		championTeam := champion
		if t, err := s.teamServ.GetByID(champion); err == nil {
			championTeam = t.Name
		}
		if err := s.mailer.SendPredictionConfirmation(ctx, email, name, championTeam, prediction.PublicID); err != nil {
			// Mail failure must not lose the saved bracket.
			s.logger.Error("failed to send confirmation email",
				slog.String("public_id", prediction.PublicID), slog.Any("error", err))
		}
	}

	s.logger.Info("prediction saved",
		slog.String("session_id", sessionID),
		slog.String("public_id", prediction.PublicID),
		slog.String("champion_id", champion))
	return prediction, nil
}

// GetSavedPrediction loads a persisted prediction and rebuilds its bracket by
// replaying the stored picks, fetching the team catalog in parallel.
func (s *bracketService) GetSavedPrediction(ctx context.Context, publicID string) (*SavedPrediction, error) {
	var (
		prediction *models.Prediction
		teams      []*models.Team
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.predictionRepo.GetByPublicID(gCtx, nil, publicID)
		if err != nil {
			if errors.Is(err, repositories.ErrPredictionNotFound) {
				return ErrPredictionNotFound
			}
			return fmt.Errorf("failed to load prediction %s: %w", publicID, err)
		}
		prediction = p
		return nil
	})
	g.Go(func() error {
		ts, err := s.teamServ.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load team catalog: %w", err)
		}
		teams = ts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b, err := brackets.New(prediction.GroupStandings, prediction.ThirdPlacePicks)
	if err != nil {
		return nil, fmt.Errorf("stored prediction %s no longer builds a bracket: %w", publicID, err)
	}
	b.Restore(prediction.KnockoutPicks)

	return &SavedPrediction{
		Prediction: prediction,
		Rounds:     b.Summary(),
		Teams:      teams,
	}, nil
}

const (
	defaultRecentPredictions = 20
	maxRecentPredictions     = 100
)

func (s *bracketService) ListRecentPredictions(ctx context.Context, limit int) ([]*models.Prediction, error) {
	if limit <= 0 {
		limit = defaultRecentPredictions
	}
	if limit > maxRecentPredictions {
		limit = maxRecentPredictions
	}
	predictions, err := s.predictionRepo.ListRecent(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}
