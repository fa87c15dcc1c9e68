package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakhaus/storefront/internal/storage"
)

type prefStorageStub struct {
	themes map[string]string
}

func (s *prefStorageStub) LoadTheme(_ context.Context, sessionID string) (string, error) {
	theme, ok := s.themes[sessionID]
	if !ok {
		return "", storage.ErrNotFound
	}
	return theme, nil
}

func (s *prefStorageStub) SaveTheme(_ context.Context, sessionID, theme string) error {
	s.themes[sessionID] = theme
	return nil
}

func TestGetTheme_DefaultsToLight(t *testing.T) {
	handler := NewThemeHandler(&prefStorageStub{themes: map[string]string{}}, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Get(rec, sessionRequest("GET", "/api/v1/theme", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var dto ThemeDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "light", dto.Theme)
}

func TestPutTheme_RoundTrip(t *testing.T) {
	stub := &prefStorageStub{themes: map[string]string{}}
	handler := NewThemeHandler(stub, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Put(rec, sessionRequest("PUT", "/api/v1/theme", `{"theme": "dark"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.Get(rec, sessionRequest("GET", "/api/v1/theme", ""))
	var dto ThemeDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "dark", dto.Theme)
}

func TestPutTheme_RejectsUnknownValue(t *testing.T) {
	handler := NewThemeHandler(&prefStorageStub{themes: map[string]string{}}, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Put(rec, sessionRequest("PUT", "/api/v1/theme", `{"theme": "sepia"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
