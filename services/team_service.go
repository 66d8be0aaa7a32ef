package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/jamalben22/stadiumport/models"
	"github.com/jamalben22/stadiumport/repositories"
	"github.com/jamalben22/stadiumport/storage"
)

// TeamService serves the static team catalog. The catalog is loaded from the
// database once at startup and answered from memory afterwards; the bracket
// core never sees the catalog change mid-game. Flag uploads are the only
// mutation and refresh the cached entry.
type TeamService interface {
	Load(ctx context.Context) error
	ListAll(ctx context.Context) ([]*models.Team, error)
	GetByID(id string) (*models.Team, error)
	UploadFlag(ctx context.Context, teamID, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger

	mu    sync.RWMutex
	byID  map[string]*models.Team
	order []string
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		logger:   logger,
		byID:     make(map[string]*models.Team),
	}
}

func (s *teamService) Load(ctx context.Context) error {
	teams, err := s.teamRepo.ListAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load team catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*models.Team, len(teams))
	s.order = s.order[:0]
	for _, t := range teams {
		s.decorate(t)
		s.byID[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	s.logger.Info("team catalog loaded", slog.Int("teams", len(teams)))
	return nil
}

// decorate fills the presentation URL for a stored flag key.
func (s *teamService) decorate(t *models.Team) {
	if t.FlagKey != nil && *t.FlagKey != "" {
		url := s.uploader.GetPublicURL(*t.FlagKey)
		t.FlagURL = &url
	}
}

func (s *teamService) ListAll(ctx context.Context) ([]*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Team, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *teamService) GetByID(id string) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return t, nil
}

func (s *teamService) UploadFlag(ctx context.Context, teamID, contentType string, file io.Reader) (*models.Team, error) {
	if _, err := s.GetByID(teamID); err != nil {
		return nil, err
	}

	ext := "png"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[1] != "" {
		ext = parts[1]
	}
	key := fmt.Sprintf("flags/%s.%s", strings.ToLower(teamID), ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload flag for team %s: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateFlagKey(ctx, nil, teamID, &result.Key); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to store flag key for team %s: %w", teamID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.byID[teamID]
	t.FlagKey = &result.Key
	t.FlagURL = &result.Location
	s.logger.Info("team flag updated", slog.String("team_id", teamID), slog.String("key", result.Key))
	return t, nil
}
