package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/sneakhaus/storefront/internal/domain"
	"github.com/sneakhaus/storefront/internal/storage"
)

// Service is the sole owner of cart state. In-memory carts are authoritative
// for the lifetime of the process; every mutation is written back to storage
// best-effort, and a session's first touch hydrates from storage, silently
// falling back to an empty cart when the stored value is missing or corrupt.
//
// A single mutex serializes all mutations, so they apply in dispatch order.
type Service struct {
	mu      sync.Mutex
	storage storage.CartStorage
	carts   map[string]*domain.Cart
}

func NewService(st storage.CartStorage) *Service {
	return &Service{
		storage: st,
		carts:   make(map[string]*domain.Cart),
	}
}

// Snapshot is a read-only copy of a session's cart with its derived values.
type Snapshot struct {
	Items     []domain.LineItem
	Total     float64
	UnitCount int
}

// Mutation reports what a cart operation did, for the UI confirmation toast.
type Mutation struct {
	Outcome domain.Outcome
	Item    domain.LineItem
	Snapshot
}

func (s *Service) Get(ctx context.Context, sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.cartFor(ctx, sessionID))
}

func (s *Service) Add(ctx context.Context, sessionID string, p domain.Product, variant string, quantity int) Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(ctx, sessionID)
	item, outcome := cart.Add(p, variant, quantity)
	s.persist(ctx, sessionID, cart)
	return Mutation{Outcome: outcome, Item: item, Snapshot: snapshotOf(cart)}
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, cartID string, quantity int) Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(ctx, sessionID)
	item, outcome := cart.UpdateQuantity(cartID, quantity)
	if outcome != domain.OutcomeNoop {
		s.persist(ctx, sessionID, cart)
	}
	return Mutation{Outcome: outcome, Item: item, Snapshot: snapshotOf(cart)}
}

func (s *Service) Remove(ctx context.Context, sessionID, cartID string) Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(ctx, sessionID)
	outcome := cart.Remove(cartID)
	if outcome != domain.OutcomeNoop {
		s.persist(ctx, sessionID, cart)
	}
	return Mutation{Outcome: outcome, Snapshot: snapshotOf(cart)}
}

func (s *Service) Clear(ctx context.Context, sessionID string) Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(ctx, sessionID)
	outcome := cart.Clear()
	s.persist(ctx, sessionID, cart)
	return Mutation{Outcome: outcome, Snapshot: snapshotOf(cart)}
}

// cartFor returns the session's in-memory cart, hydrating it from storage on
// first touch. Storage failures are logged and degrade to an empty cart;
// they are never surfaced to the user. Caller must hold the lock.
func (s *Service) cartFor(ctx context.Context, sessionID string) *domain.Cart {
	if cart, ok := s.carts[sessionID]; ok {
		return cart
	}

	cart := &domain.Cart{SessionID: sessionID}
	items, err := s.storage.Load(ctx, sessionID)
	switch {
	case err == nil:
		cart.Items = items
	case errors.Is(err, storage.ErrNotFound):
		// new session, nothing stored yet
	default:
		log.Printf("cart load failed for session %s, starting empty: %v", sessionID, err)
	}

	s.carts[sessionID] = cart
	return cart
}

// persist writes the full line-item list back to storage. Best-effort: a
// failed write keeps the in-memory cart authoritative for the session.
func (s *Service) persist(ctx context.Context, sessionID string, cart *domain.Cart) {
	if err := s.storage.Save(ctx, sessionID, cart.Items); err != nil {
		log.Printf("cart persist failed for session %s: %v", sessionID, err)
	}
}

func snapshotOf(cart *domain.Cart) Snapshot {
	items := make([]domain.LineItem, len(cart.Items))
	copy(items, cart.Items)
	return Snapshot{
		Items:     items,
		Total:     cart.Total(),
		UnitCount: cart.UnitCount(),
	}
}
