package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sneakhaus/storefront/internal/storage"
)

const defaultTheme = "light"

type ThemeHandler struct {
	prefs   storage.PrefStorage
	timeout time.Duration
}

func NewThemeHandler(prefs storage.PrefStorage, timeout time.Duration) *ThemeHandler {
	return &ThemeHandler{
		prefs:   prefs,
		timeout: timeout,
	}
}

type ThemeDTO struct {
	Theme string `json:"theme"`
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	theme, err := h.prefs.LoadTheme(ctx, sessionFromContext(r.Context()))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("theme load failed: %v", err)
		}
		theme = defaultTheme
	}

	respondJSON(w, http.StatusOK, ThemeDTO{Theme: theme})
}

func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ThemeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Theme != "dark" && req.Theme != "light" {
		respondError(w, http.StatusBadRequest, "invalid_theme", `theme must be "dark" or "light"`)
		return
	}

	// best-effort, like the rest of local storage
	if err := h.prefs.SaveTheme(ctx, sessionFromContext(r.Context()), req.Theme); err != nil {
		log.Printf("theme save failed: %v", err)
	}

	respondJSON(w, http.StatusOK, req)
}
