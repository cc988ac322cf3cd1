// Package store implements the persistence gateway: the full application
// snapshot serialized as one JSON value under a single key of a byte store.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

// SnapshotKey is the only key the gateway writes application state under.
const SnapshotKey = "fieldservice:snapshot"

// persistedUser mirrors domain.User for storage. The separate shape exists
// because the API serialization of User hides the password hash, which must
// survive the round trip here.
type persistedUser struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

type persistedSnapshot struct {
	Users  []persistedUser        `json:"users"`
	Orders []*domain.ServiceOrder `json:"orders"`
}

// SnapshotGateway marshals the snapshot into a ByteStore.
type SnapshotGateway struct {
	store ports.ByteStore
	log   zerolog.Logger
}

func NewSnapshotGateway(store ports.ByteStore, log zerolog.Logger) *SnapshotGateway {
	return &SnapshotGateway{store: store, log: log}
}

func (g *SnapshotGateway) Save(ctx context.Context, snap *ports.Snapshot) error {
	out := persistedSnapshot{
		Users:  make([]persistedUser, 0, len(snap.Users)),
		Orders: snap.Orders,
	}
	for _, u := range snap.Users {
		out.Users = append(out.Users, persistedUser{User: *u, PasswordHash: u.PasswordHash})
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", domain.ErrSnapshotStore, err)
	}
	if err := g.store.Set(ctx, SnapshotKey, payload); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSnapshotStore, err)
	}

	g.log.Debug().Int("users", len(snap.Users)).Int("orders", len(snap.Orders)).Msg("snapshot saved")
	return nil
}

func (g *SnapshotGateway) Load(ctx context.Context) (*ports.Snapshot, bool, error) {
	payload, found, err := g.store.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrSnapshotStore, err)
	}
	if !found {
		return nil, false, nil
	}

	var in persistedSnapshot
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, false, fmt.Errorf("%w: corrupt snapshot: %v", domain.ErrSnapshotStore, err)
	}

	snap := &ports.Snapshot{
		Users:  make([]*domain.User, 0, len(in.Users)),
		Orders: in.Orders,
	}
	for i := range in.Users {
		u := in.Users[i].User
		u.PasswordHash = in.Users[i].PasswordHash
		snap.Users = append(snap.Users, &u)
	}
	return snap, true, nil
}
