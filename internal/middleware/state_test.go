package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/states-api/internal/dataset"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	data, err := dataset.Load()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/states/:state", ResolveState(data), func(c *fiber.Ctx) error {
		record, ok := State(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(record.Code)
	})
	return app
}

func TestResolveState(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/states/KS", fiber.StatusOK, "KS"},
		{"/states/ks", fiber.StatusOK, "KS"},
		{"/states/nY", fiber.StatusOK, "NY"},
		{"/states/ZZ", fiber.StatusNotFound, ""},
		{"/states/KSS", fiber.StatusBadRequest, ""},
		{"/states/K1", fiber.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.wantBody, string(body))
				return
			}
			var payload map[string]string
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, MsgInvalidState, payload["message"])
		})
	}
}
