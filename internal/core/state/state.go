// Package state owns the in-memory {users, orders} collections behind a
// single-writer boundary. Every mutation runs inside Commit, which applies
// the change to a working copy, persists the resulting snapshot, and only
// then swaps the copy in. A failed save therefore leaves the live state
// untouched instead of opening an inconsistency window between memory and
// store.
//
// Two processes pointed at the same byte store still race each other
// (last writer wins); this boundary only sequences writers inside one
// process.
package state

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

// AppState is the explicit application-state struct shared by the managers.
type AppState struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	orders map[string]*domain.ServiceOrder
	gw     ports.SnapshotGateway
	log    zerolog.Logger
}

// New returns an empty AppState backed by the given snapshot gateway.
func New(gw ports.SnapshotGateway, log zerolog.Logger) *AppState {
	return &AppState{
		users:  make(map[string]*domain.User),
		orders: make(map[string]*domain.ServiceOrder),
		gw:     gw,
		log:    log,
	}
}

// Hydrate loads the persisted snapshot into memory. A missing snapshot
// leaves the state empty and is not an error.
func (s *AppState) Hydrate(ctx context.Context) error {
	snap, found, err := s.gw.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		s.log.Info().Msg("no snapshot found, starting empty")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*domain.User, len(snap.Users))
	for _, u := range snap.Users {
		s.users[u.ID] = u.Clone()
	}
	s.orders = make(map[string]*domain.ServiceOrder, len(snap.Orders))
	for _, o := range snap.Orders {
		s.orders[o.ID] = o.Clone()
	}
	s.log.Info().Int("users", len(snap.Users)).Int("orders", len(snap.Orders)).Msg("snapshot hydrated")
	return nil
}

// Tx is the working copy a Commit callback mutates. All entities in a Tx are
// clones; mutating them never touches live state until the commit succeeds.
type Tx struct {
	users  map[string]*domain.User
	orders map[string]*domain.ServiceOrder
}

// Order returns the order with the given id, or nil.
func (tx *Tx) Order(id string) *domain.ServiceOrder {
	return tx.orders[id]
}

// Orders returns every order in the working copy, unordered.
func (tx *Tx) Orders() []*domain.ServiceOrder {
	out := make([]*domain.ServiceOrder, 0, len(tx.orders))
	for _, o := range tx.orders {
		out = append(out, o)
	}
	return out
}

// PutOrder inserts or replaces an order.
func (tx *Tx) PutOrder(o *domain.ServiceOrder) {
	tx.orders[o.ID] = o
}

// User returns the user with the given id, or nil.
func (tx *Tx) User(id string) *domain.User {
	return tx.users[id]
}

// UserByEmail returns the user with the given email, or nil.
func (tx *Tx) UserByEmail(email string) *domain.User {
	for _, u := range tx.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// Users returns every user in the working copy, unordered.
func (tx *Tx) Users() []*domain.User {
	out := make([]*domain.User, 0, len(tx.users))
	for _, u := range tx.users {
		out = append(out, u)
	}
	return out
}

// PutUser inserts or replaces a user.
func (tx *Tx) PutUser(u *domain.User) {
	tx.users[u.ID] = u
}

// Commit runs fn against a working copy of the state, persists the resulting
// snapshot, and swaps the copy in. If fn returns an error or the save fails,
// live state is unchanged.
func (s *AppState) Commit(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		users:  make(map[string]*domain.User, len(s.users)),
		orders: make(map[string]*domain.ServiceOrder, len(s.orders)),
	}
	for id, u := range s.users {
		tx.users[id] = u.Clone()
	}
	for id, o := range s.orders {
		tx.orders[id] = o.Clone()
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := s.gw.Save(ctx, snapshotOf(tx)); err != nil {
		s.log.Error().Err(err).Msg("snapshot save failed, mutation rolled back")
		return err
	}

	s.users = tx.users
	s.orders = tx.orders
	return nil
}

// View runs fn under the lock against a read-only view of the live state.
func (s *AppState) View(fn func(v *View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&View{state: s})
}

// View exposes cloned reads of the live collections.
type View struct {
	state *AppState
}

// Order returns a clone of the order with the given id, or nil.
func (v *View) Order(id string) *domain.ServiceOrder {
	if o, ok := v.state.orders[id]; ok {
		return o.Clone()
	}
	return nil
}

// Orders returns clones of every order, unordered.
func (v *View) Orders() []*domain.ServiceOrder {
	out := make([]*domain.ServiceOrder, 0, len(v.state.orders))
	for _, o := range v.state.orders {
		out = append(out, o.Clone())
	}
	return out
}

// User returns a clone of the user with the given id, or nil.
func (v *View) User(id string) *domain.User {
	if u, ok := v.state.users[id]; ok {
		return u.Clone()
	}
	return nil
}

// UserByEmail returns a clone of the user with the given email, or nil.
func (v *View) UserByEmail(email string) *domain.User {
	for _, u := range v.state.users {
		if u.Email == email {
			return u.Clone()
		}
	}
	return nil
}

// Users returns clones of every user, unordered.
func (v *View) Users() []*domain.User {
	out := make([]*domain.User, 0, len(v.state.users))
	for _, u := range v.state.users {
		out = append(out, u.Clone())
	}
	return out
}

// snapshotOf flattens a working copy into the durable snapshot shape with a
// deterministic ordering, so identical states serialize identically.
func snapshotOf(tx *Tx) *ports.Snapshot {
	snap := &ports.Snapshot{
		Users:  tx.Users(),
		Orders: tx.Orders(),
	}
	sort.Slice(snap.Users, func(i, j int) bool {
		if !snap.Users[i].CreatedAt.Equal(snap.Users[j].CreatedAt) {
			return snap.Users[i].CreatedAt.Before(snap.Users[j].CreatedAt)
		}
		return snap.Users[i].ID < snap.Users[j].ID
	})
	sort.Slice(snap.Orders, func(i, j int) bool {
		if !snap.Orders[i].CreatedAt.Equal(snap.Orders[j].CreatedAt) {
			return snap.Orders[i].CreatedAt.Before(snap.Orders[j].CreatedAt)
		}
		return snap.Orders[i].ID < snap.Orders[j].ID
	})
	return snap
}
