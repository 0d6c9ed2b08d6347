package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_RendersJSON(t *testing.T) {
	s := New(logger.NewNop(), Port("0"))
	s.App.Get("/teapot", func(ctx *fiber.Ctx) error {
		return fiber.NewError(http.StatusTeapot, "short and stout")
	})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "short and stout", got["error"])
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	s := New(logger.NewNop())

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOptions(t *testing.T) {
	s := New(logger.NewNop(), Port("8080"), Prefork(false), BodyLimit(1024))

	assert.Equal(t, ":8080", s.address)
	assert.Equal(t, 1024, s.bodyLimit)
}
