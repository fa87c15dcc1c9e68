package storage

import (
	"context"
	"errors"

	"github.com/sneakhaus/storefront/internal/domain"
)

// CartStorage is the durable key-value store holding each session's
// serialized line items. Writes are best-effort; the in-memory cart stays
// authoritative for the session when storage is unavailable.
type CartStorage interface {
	Load(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	Save(ctx context.Context, sessionID string, items []domain.LineItem) error
	Delete(ctx context.Context, sessionID string) error
}

// PrefStorage holds the session's theme preference ("dark"/"light") under a
// separate key from the cart.
type PrefStorage interface {
	LoadTheme(ctx context.Context, sessionID string) (string, error)
	SaveTheme(ctx context.Context, sessionID, theme string) error
}

var ErrNotFound = errors.New("key not stored")
