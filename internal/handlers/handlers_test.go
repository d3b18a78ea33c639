package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/states-api/internal/models"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"", nil},
		{"null", nil},
		{" null ", nil},
		{"1", intPtr(1)},
		{"42", intPtr(42)},
		{"-3", intPtr(-3)},
		{"0", intPtr(0)},
		{`"2"`, intPtr(0)},
		{"2.5", intPtr(0)},
		{"true", intPtr(0)},
	}
	for _, tt := range tests {
		got := parseIndex(json.RawMessage(tt.raw))
		if tt.want == nil {
			assert.Nil(t, got, tt.raw)
			continue
		}
		require.NotNil(t, got, tt.raw)
		assert.Equal(t, *tt.want, *got, tt.raw)
	}
}

func intPtr(i int) *int { return &i }

func TestDocumentResponse(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	resp := documentResponse(models.FunFactDocument{
		ID:        id,
		StateCode: "KS",
		FunFacts:  nil,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, []string{}, resp.FunFacts)
	assert.Equal(t, "2024-03-01T12:00:00Z", resp.CreatedAt)

	raw, err := json.Marshal(documentResponse(models.FunFactDocument{FunFacts: pq.StringArray{"A"}}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"funFacts":["A"]`)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: relation \"fun_facts\" does not exist")
	})

	tests := []struct {
		path       string
		wantStatus int
		wantMsg    string
	}{
		{"/teapot", fiber.StatusTeapot, "short and stout"},
		{"/boom", fiber.StatusInternalServerError, msgServerError},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, tt.wantStatus, resp.StatusCode)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, tt.wantMsg, payload["message"])
	}
}

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/health", HealthCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
