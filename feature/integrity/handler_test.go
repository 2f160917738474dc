package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"kawa-inventory/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, name string, archive bool) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, "snapshots", archive, zap.NewNop(), setupDB(t, name))
	NewHandler(svc).RegisterRoutes(app)
	return app, mockClient
}

func getJSON(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient := setupTestApp(t, "integrity_handler_all", true)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "schema")
	assert.Contains(t, body, "reference")

	schema := body["schema"].(map[string]any)
	assert.Equal(t, true, schema["matched"])
	archive := body["archive"].(map[string]any)
	assert.Equal(t, true, archive["exists"])
	assert.Equal(t, 0.0, archive["snapshots"])
}

func TestHandleIntegrityCheck_ArchiveDisabled(t *testing.T) {
	app, mockClient := setupTestApp(t, "integrity_handler_disabled", false)

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)
	assert.Equal(t, map[string]any{"status": "disabled"}, body["archive"])
	mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)

	status, _ = getJSON(t, app, "/integrity/archive")
	assert.Equal(t, 404, status)
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t, "integrity_handler_schema", false)

	status, body := getJSON(t, app, "/integrity/schema")
	assert.Equal(t, 200, status)
	assert.Equal(t, "sqlite", body["driver"])
	assert.Equal(t, true, body["matched"])
}

func TestHandleReferenceCheck(t *testing.T) {
	app, _ := setupTestApp(t, "integrity_handler_reference", false)

	status, body := getJSON(t, app, "/integrity/reference")
	assert.Equal(t, 200, status)
	assert.Equal(t, "empty", body["status"])
}

func TestHandleArchiveCheck_Fix(t *testing.T) {
	app, mockClient := setupTestApp(t, "integrity_handler_archive", true)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)

	status, body := getJSON(t, app, "/integrity/archive")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["exists"])
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)

	status, body = getJSON(t, app, "/integrity/archive?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["exists"])
	mockClient.AssertCalled(t, "MakeBucket", mock.Anything, "test-bucket", mock.Anything)
}
