package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

func newGateway(t *testing.T) *SnapshotGateway {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return NewSnapshotGateway(fs, zerolog.Nop())
}

func sampleSnapshot() *ports.Snapshot {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	started := now.Add(time.Hour)
	return &ports.Snapshot{
		Users: []*domain.User{
			{
				ID:           "u1",
				Name:         "Tech One",
				Email:        "tech1@liketelecom.com",
				PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
				Role:         domain.RoleTechnician,
				Status:       domain.UserActive,
				MonthlyPoints: map[string]int{
					"2026-8": 15,
					"2026-7": 40,
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Orders: []*domain.ServiceOrder{
			{
				ID:   "o1",
				Type: domain.TypeSupport,
				Client: domain.Client{
					Name:    "Maria Souza",
					Phone:   "+55 11 91234-5678",
					Address: "Rua das Flores 100",
				},
				Status:        domain.StatusExecuting,
				Priority:      1,
				CreatedAt:     now,
				ScheduledDate: now.AddDate(0, 0, 1),
				StartedAt:     &started,
				CreatedBy:     "att1",
				AssignedTo:    "u1",
				Notes:         "intermittent signal",
			},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	original := sampleSnapshot()
	if err := gw.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("snapshot not found after save")
	}

	if !reflect.DeepEqual(original.Users, loaded.Users) {
		t.Fatalf("users changed across round trip:\nsaved: %+v\nloaded: %+v", original.Users[0], loaded.Users[0])
	}
	if !reflect.DeepEqual(original.Orders, loaded.Orders) {
		t.Fatalf("orders changed across round trip:\nsaved: %+v\nloaded: %+v", original.Orders[0], loaded.Orders[0])
	}
}

func TestSnapshotRoundTrip_KeepsPasswordHash(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	if err := gw.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, _, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Users[0].PasswordHash != "$2a$10$abcdefghijklmnopqrstuv" {
		t.Fatalf("password hash lost: %q", loaded.Users[0].PasswordHash)
	}
}

func TestLoad_MissingSnapshot(t *testing.T) {
	gw := newGateway(t)
	snap, found, err := gw.Load(context.Background())
	if err != nil || found || snap != nil {
		t.Fatalf("expected clean miss, got snap=%v found=%v err=%v", snap, found, err)
	}
}

func TestLoad_CorruptPayload(t *testing.T) {
	fs, _ := NewFileStore(t.TempDir())
	gw := NewSnapshotGateway(fs, zerolog.Nop())
	ctx := context.Background()

	if err := fs.Set(ctx, SnapshotKey, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}
	if _, _, err := gw.Load(ctx); !errors.Is(err, domain.ErrSnapshotStore) {
		t.Fatalf("expected ErrSnapshotStore, got %v", err)
	}
}
