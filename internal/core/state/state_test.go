package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

type stubGateway struct {
	snap    *ports.Snapshot
	saveErr error
}

func (g *stubGateway) Save(_ context.Context, snap *ports.Snapshot) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.snap = snap
	return nil
}

func (g *stubGateway) Load(_ context.Context) (*ports.Snapshot, bool, error) {
	if g.snap == nil {
		return nil, false, nil
	}
	return g.snap, true, nil
}

func TestCommit_SwapsStateAfterSave(t *testing.T) {
	gw := &stubGateway{}
	st := New(gw, zerolog.Nop())

	err := st.Commit(context.Background(), func(tx *Tx) error {
		tx.PutOrder(&domain.ServiceOrder{ID: "o1", Status: domain.StatusPending, Priority: 1})
		return nil
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	var got *domain.ServiceOrder
	st.View(func(v *View) { got = v.Order("o1") })
	if got == nil {
		t.Fatalf("committed order not visible")
	}
	if gw.snap == nil || len(gw.snap.Orders) != 1 {
		t.Fatalf("snapshot not persisted")
	}
}

func TestCommit_SaveFailureLeavesStateUntouched(t *testing.T) {
	gw := &stubGateway{}
	st := New(gw, zerolog.Nop())

	_ = st.Commit(context.Background(), func(tx *Tx) error {
		tx.PutUser(&domain.User{ID: "u1", Email: "u1@example.com"})
		return nil
	})

	gw.saveErr = errors.New("write failed")
	err := st.Commit(context.Background(), func(tx *Tx) error {
		tx.User("u1").Name = "Changed"
		tx.PutOrder(&domain.ServiceOrder{ID: "o1", Status: domain.StatusPending})
		return nil
	})
	if err == nil {
		t.Fatalf("expected save error")
	}

	st.View(func(v *View) {
		if v.User("u1").Name == "Changed" {
			t.Fatalf("mutation leaked into live state")
		}
		if v.Order("o1") != nil {
			t.Fatalf("order leaked into live state")
		}
	})
}

func TestCommit_CallbackErrorAborts(t *testing.T) {
	gw := &stubGateway{}
	st := New(gw, zerolog.Nop())

	wantErr := errors.New("rejected")
	err := st.Commit(context.Background(), func(tx *Tx) error {
		tx.PutOrder(&domain.ServiceOrder{ID: "o1"})
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if gw.snap != nil {
		t.Fatalf("aborted commit still saved a snapshot")
	}
}

func TestCommit_MutationsIsolatedFromLiveState(t *testing.T) {
	gw := &stubGateway{}
	st := New(gw, zerolog.Nop())

	_ = st.Commit(context.Background(), func(tx *Tx) error {
		u := &domain.User{ID: "u1", Email: "u1@example.com"}
		u.AddPoints("2026-8", 5)
		tx.PutUser(u)
		return nil
	})

	// Mutating a clone handed out by View must not affect live state.
	var clone *domain.User
	st.View(func(v *View) { clone = v.User("u1") })
	clone.AddPoints("2026-8", 100)

	st.View(func(v *View) {
		if pts := v.User("u1").PointsFor("2026-8"); pts != 5 {
			t.Fatalf("view clone mutation leaked: %d points", pts)
		}
	})
}

func TestHydrate_RestoresCollections(t *testing.T) {
	now := time.Now().UTC()
	gw := &stubGateway{snap: &ports.Snapshot{
		Users:  []*domain.User{{ID: "u1", Email: "u1@example.com", CreatedAt: now}},
		Orders: []*domain.ServiceOrder{{ID: "o1", Status: domain.StatusPending, Priority: 1, CreatedAt: now}},
	}}

	st := New(gw, zerolog.Nop())
	if err := st.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	st.View(func(v *View) {
		if v.User("u1") == nil || v.Order("o1") == nil {
			t.Fatalf("hydrated entities missing")
		}
	})
}

func TestHydrate_EmptyStoreStartsEmpty(t *testing.T) {
	st := New(&stubGateway{}, zerolog.Nop())
	if err := st.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	st.View(func(v *View) {
		if len(v.Users()) != 0 || len(v.Orders()) != 0 {
			t.Fatalf("expected empty state")
		}
	})
}
