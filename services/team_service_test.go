package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamalben22/stadiumport/models"
	"github.com/jamalben22/stadiumport/repositories"
	"github.com/jamalben22/stadiumport/storage"
)

type fakeTeamRepo struct {
	teams    []*models.Team
	flagKeys map[string]string
}

func (f *fakeTeamRepo) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Team, error) {
	out := make([]*models.Team, len(f.teams))
	for i, t := range f.teams {
		copied := *t
		out[i] = &copied
	}
	return out, nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Team, error) {
	for _, t := range f.teams {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) UpdateFlagKey(ctx context.Context, exec repositories.SQLExecutor, id string, flagKey *string) error {
	for _, t := range f.teams {
		if t.ID == id {
			if f.flagKeys == nil {
				f.flagKeys = make(map[string]string)
			}
			f.flagKeys[id] = *flagKey
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

type fakeUploader struct {
	uploads map[string]string
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.uploads == nil {
		f.uploads = make(map[string]string)
	}
	f.uploads[key] = contentType
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newTestTeamService(t *testing.T) (TeamService, *fakeTeamRepo, *fakeUploader) {
	t.Helper()
	flagKey := "flags/bra.png"
	repo := &fakeTeamRepo{teams: []*models.Team{
		{ID: "BRA", Name: "Brazil", Region: "South America", Group: "A", FlagKey: &flagKey},
		{ID: "GER", Name: "Germany", Region: "Europe", Group: "B"},
	}}
	uploader := &fakeUploader{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewTeamService(repo, uploader, logger)
	require.NoError(t, svc.Load(context.Background()))
	return svc, repo, uploader
}

func TestTeamService_LoadDecoratesFlagURLs(t *testing.T) {
	svc, _, _ := newTestTeamService(t)

	teams, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)

	require.NotNil(t, teams[0].FlagURL)
	assert.Equal(t, "https://cdn.test/flags/bra.png", *teams[0].FlagURL)
	assert.Nil(t, teams[1].FlagURL)
}

func TestTeamService_GetByID(t *testing.T) {
	svc, _, _ := newTestTeamService(t)

	team, err := svc.GetByID("GER")
	require.NoError(t, err)
	assert.Equal(t, "Germany", team.Name)

	_, err = svc.GetByID("XXX")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamService_UploadFlag(t *testing.T) {
	svc, repo, uploader := newTestTeamService(t)

	team, err := svc.UploadFlag(context.Background(), "GER", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NotNil(t, team.FlagKey)
	assert.Equal(t, "flags/ger.png", *team.FlagKey)
	assert.Equal(t, "image/png", uploader.uploads[*team.FlagKey])
	assert.Equal(t, *team.FlagKey, repo.flagKeys["GER"])

	// The cached catalog entry now carries the new flag.
	cached, err := svc.GetByID("GER")
	require.NoError(t, err)
	require.NotNil(t, cached.FlagURL)
	assert.Equal(t, "https://cdn.test/flags/ger.png", *cached.FlagURL)
}

func TestTeamService_UploadFlagUnknownTeam(t *testing.T) {
	svc, _, _ := newTestTeamService(t)

	_, err := svc.UploadFlag(context.Background(), "XXX", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
