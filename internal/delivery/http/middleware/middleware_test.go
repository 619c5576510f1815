package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"skill-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/invalid", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusUnprocessableEntity, "", map[string]string{"name": "required"}, nil)
	})
	app.Get("/gateway", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "", nil, errors.New("upstream"))
	})
	app.Get("/hidden", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInsufficientStorage, "disk full on /var", nil, nil)
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("unexpected")
	})

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/invalid", fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity},
		{"/gateway", fiber.StatusBadGateway, response.MessageBadGateway},
		{"/hidden", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/plain", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/panic", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/missing", fiber.StatusNotFound, fiber.ErrNotFound.Message},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var env response.SemanticResponse
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.Equal(t, tc.msg, env.Message)
		})
	}
}

func TestAccessLog_RequestID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log).Middleware())
	app.Get("/x", func(c fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "rid-1", resp.Header.Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"rid":"rid-1"`)
	assert.Contains(t, buf.String(), `"status":200`)

	resp, err = app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}
