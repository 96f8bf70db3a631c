package audit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"estate-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
		Return(objects("listings/a", "listings/b", "listings/c", "listings/orphan"))

	svc, _ := setupService(t, client)
	app := fiber.New()
	feature := NewFeature(svc)
	require.NoError(t, feature.Load(app))
	return app, client
}

func TestHandleAudit(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/audit/media", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, []string{"listings/orphan"}, report.Orphans)
	assert.Empty(t, report.Missing)
}

func TestHandleCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/audit/media/listings/orphan", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "listings/orphan", body["id"])
	assert.Equal(t, false, body["db_present"])

	resp, err = app.Test(httptest.NewRequest("GET", "/audit/media/listings/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandlePurge(t *testing.T) {
	app, client := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/audit/media/purge", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	client.On("RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything).Return(nil)

	resp, err = app.Test(httptest.NewRequest("POST", "/audit/media/purge?confirm=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 1, report.Executed)
	client.AssertCalled(t, "RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(nil)
	assert.Equal(t, "audit", feature.Name())
	assert.False(t, feature.IsEnabled())
}
