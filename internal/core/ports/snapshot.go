package ports

import (
	"context"
	"time"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// Snapshot is the single durable artifact: the full {users, orders} state.
type Snapshot struct {
	Users  []*domain.User
	Orders []*domain.ServiceOrder
}

// SnapshotGateway persists the whole snapshot in one write. There is no
// incremental persistence and no transaction log; the application-state
// commit protocol compensates by only swapping in-memory state after a
// successful save.
type SnapshotGateway interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Load returns (nil, false, nil) when no snapshot has been saved yet.
	// A corrupt payload surfaces domain.ErrSnapshotStore.
	Load(ctx context.Context) (*Snapshot, bool, error)
}

// ByteStore is the key-value byte store the gateway serializes into.
type ByteStore interface {
	Set(ctx context.Context, key string, value []byte) error
	// Get returns (nil, false, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}

// Calendar vetoes scheduling on blocked dates (holidays or the past).
type Calendar interface {
	IsBlockedDate(date time.Time) bool
}
