package server_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"nwbridge/core/database"
	"nwbridge/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRuns struct {
	runs []database.ConversionRun
}

func (f *fakeRuns) List(ctx context.Context) ([]database.ConversionRun, error) {
	return f.runs, nil
}

func (f *fakeRuns) Get(ctx context.Context, id string) (*database.ConversionRun, error) {
	for i := range f.runs {
		if f.runs[i].ID == id {
			return &f.runs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeArchives struct {
	names []string
}

func (f *fakeArchives) ListArchives(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func newApp(deps server.Deps) *fiber.App {
	return server.New(zap.NewNop(), server.Config{}, deps)
}

func TestHealth(t *testing.T) {
	app := newApp(server.Deps{})
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListRuns(t *testing.T) {
	runs := &fakeRuns{runs: []database.ConversionRun{
		{ID: "id-1", Experiment: "exp", Session: "day1", Status: database.StatusCompleted},
	}}
	app := newApp(server.Deps{Runs: runs})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got []database.ConversionRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "id-1", got[0].ID)
}

func TestGetRun(t *testing.T) {
	runs := &fakeRuns{runs: []database.ConversionRun{{ID: "id-1"}}}
	app := newApp(server.Deps{Runs: runs})

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/runs/id-1", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/runs/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestRunsUnavailableWithoutCatalog(t *testing.T) {
	app := newApp(server.Deps{})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestListFormats(t *testing.T) {
	app := newApp(server.Deps{Formats: func() []string { return []string{"BehaviorEvents", "Video"} }})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/formats", nil))
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"BehaviorEvents", "Video"}, got)
}

func TestListArchives(t *testing.T) {
	app := newApp(server.Deps{Archives: &fakeArchives{names: []string{"a.nwb"}}})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/archives", nil))
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"a.nwb"}, got)
}

func TestAPIKeyProtectsRoutes(t *testing.T) {
	app := server.New(zap.NewNop(), server.Config{ApiKey: "secret"}, server.Deps{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/formats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/formats", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Health stays open.
	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
