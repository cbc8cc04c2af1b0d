package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/session"
	"github.com/claude/liftcalc/internal/setlog"
	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestMemoryRegistry verifies the in-memory flow: create, log sets, query, reset.
func TestMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry(nil, discardLogger())

	s, err := reg.Create(ctx, "Leg day")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := reg.AddSet(ctx, s.ID, "Squat", 5, 225); err != nil {
		t.Fatalf("AddSet: %v", err)
	}
	if err := reg.AddSet(ctx, s.ID, "Lunge", 10, 50); err != nil {
		t.Fatalf("AddSet: %v", err)
	}

	tr, err := reg.Tracker(ctx, s.ID)
	if err != nil {
		t.Fatalf("Tracker: %v", err)
	}
	if got := tr.TotalVolume(); got != 1625 {
		t.Errorf("TotalVolume() = %v, want 1625", got)
	}

	if err := reg.Reset(ctx, s.ID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := tr.Exercises(); len(got) != 0 {
		t.Errorf("Exercises() after reset = %v, want empty", got)
	}

	sessions, err := reg.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != s.ID {
		t.Errorf("Sessions() = %v, want [%s]", sessions, s.ID)
	}
}

// TestUnknownSession verifies every operation reports ErrSessionNotFound for unknown ids.
func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry(nil, discardLogger())
	id := uuid.New()

	if _, err := reg.Tracker(ctx, id); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Tracker error = %v, want ErrSessionNotFound", err)
	}
	if err := reg.AddSet(ctx, id, "Squat", 5, 225); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("AddSet error = %v, want ErrSessionNotFound", err)
	}
	if err := reg.Reset(ctx, id); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Reset error = %v, want ErrSessionNotFound", err)
	}
}

// TestAddSetInvalidBeforeLookup verifies argument errors win over lookup errors.
func TestAddSetInvalidBeforeLookup(t *testing.T) {
	reg := session.NewRegistry(nil, discardLogger())
	err := reg.AddSet(context.Background(), uuid.New(), "", 5, 100)
	if !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("AddSet error = %v, want ErrInvalidArgument", err)
	}
}

// TestRegistryRehydratesFromStore verifies a fresh registry rebuilds a tracker
// from the SQLite set log with the original exercise order.
func TestRegistryRehydratesFromStore(t *testing.T) {
	ctx := context.Background()
	store, err := setlog.Open(t.TempDir())
	if err != nil {
		t.Fatalf("setlog.Open: %v", err)
	}
	defer store.Close()

	first := session.NewRegistry(store, discardLogger())
	s, err := first.Create(ctx, "Push")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, set := range []struct {
		ex     string
		reps   int
		weight float64
	}{
		{"Bench", 5, 185},
		{"Dip", 10, 0},
		{"Bench", 3, 195},
	} {
		if err := first.AddSet(ctx, s.ID, set.ex, set.reps, set.weight); err != nil {
			t.Fatalf("AddSet(%s): %v", set.ex, err)
		}
	}

	second := session.NewRegistry(store, discardLogger())
	tr, err := second.Tracker(ctx, s.ID)
	if err != nil {
		t.Fatalf("Tracker: %v", err)
	}
	if got, want := tr.Exercises(), []string{"Bench", "Dip"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Exercises() = %v, want %v", got, want)
	}
	if got := tr.Volume("Bench"); got != 925+585 {
		t.Errorf("Volume(Bench) = %v, want %v", got, 925+585)
	}

	rows, err := store.QueryWorkoutSets(ctx, s.ID)
	if err != nil {
		t.Fatalf("QueryWorkoutSets: %v", err)
	}
	if rows[2].SetNumber != 2 {
		t.Errorf("second bench set number = %d, want 2", rows[2].SetNumber)
	}

	if err := second.Reset(ctx, s.ID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	third := session.NewRegistry(store, discardLogger())
	tr, err = third.Tracker(ctx, s.ID)
	if err != nil {
		t.Fatalf("Tracker after reset: %v", err)
	}
	if got := tr.TotalVolume(); got != 0 {
		t.Errorf("TotalVolume() after stored reset = %v, want 0", got)
	}

	if _, err := third.Tracker(ctx, uuid.New()); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Tracker(unknown) error = %v, want ErrSessionNotFound", err)
	}
}

// failingStore accepts sessions but fails every set write.
type failingStore struct {
	session.SetStore
}

func (failingStore) CreateSession(context.Context, models.SessionRow) error { return nil }

func (failingStore) InsertWorkoutSets(context.Context, []models.WorkoutSetRow) (int64, error) {
	return 0, errors.New("disk full")
}

// TestAddSetStoreFailure verifies a failed write leaves the tracker unchanged.
func TestAddSetStoreFailure(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry(failingStore{}, discardLogger())
	s, err := reg.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := reg.AddSet(ctx, s.ID, "Squat", 5, 225); err == nil {
		t.Fatal("expected error from failing store")
	}
	tr, err := reg.Tracker(ctx, s.ID)
	if err != nil {
		t.Fatalf("Tracker: %v", err)
	}
	if got := tr.Exercises(); len(got) != 0 {
		t.Errorf("Exercises() = %v, want empty after failed write", got)
	}
}

// slowStore keeps rows in memory and holds InsertWorkoutSets open, after the
// row is recorded, until release is closed.
type slowStore struct {
	session.SetStore

	entered chan struct{}
	release chan struct{}

	mu   sync.Mutex
	rows []models.WorkoutSetRow
}

func (s *slowStore) CreateSession(context.Context, models.SessionRow) error { return nil }

func (s *slowStore) InsertWorkoutSets(_ context.Context, rows []models.WorkoutSetRow) (int64, error) {
	s.mu.Lock()
	s.rows = append(s.rows, rows...)
	s.mu.Unlock()
	close(s.entered)
	<-s.release
	return int64(len(rows)), nil
}

func (s *slowStore) DeleteWorkoutSets(context.Context, uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

// TestResetWaitsForInFlightSet verifies a reset issued during a slow set write
// runs after it, so the tracker and the store end up agreeing.
func TestResetWaitsForInFlightSet(t *testing.T) {
	ctx := context.Background()
	store := &slowStore{entered: make(chan struct{}), release: make(chan struct{})}
	reg := session.NewRegistry(store, discardLogger())
	s, err := reg.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	addDone := make(chan error, 1)
	go func() { addDone <- reg.AddSet(ctx, s.ID, "Squat", 5, 225) }()
	<-store.entered

	resetDone := make(chan error, 1)
	go func() { resetDone <- reg.Reset(ctx, s.ID) }()

	select {
	case err := <-resetDone:
		t.Fatalf("Reset returned (err=%v) while a set write was still in flight", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	if err := <-addDone; err != nil {
		t.Fatalf("AddSet: %v", err)
	}
	if err := <-resetDone; err != nil {
		t.Fatalf("Reset: %v", err)
	}

	tr, err := reg.Tracker(ctx, s.ID)
	if err != nil {
		t.Fatalf("Tracker: %v", err)
	}
	store.mu.Lock()
	stored := len(store.rows)
	store.mu.Unlock()
	if got := tr.Exercises(); len(got) != 0 || stored != 0 {
		t.Errorf("after reset: exercises = %v, stored rows = %d, want both empty", got, stored)
	}
}

// recordingStore keeps inserted rows in order.
type recordingStore struct {
	session.SetStore

	mu   sync.Mutex
	rows []models.WorkoutSetRow
}

func (s *recordingStore) CreateSession(context.Context, models.SessionRow) error { return nil }

func (s *recordingStore) InsertWorkoutSets(_ context.Context, rows []models.WorkoutSetRow) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	return int64(len(rows)), nil
}

// TestConcurrentAddSetOrder verifies concurrent writers get distinct set
// numbers and the store keeps the tracker's order.
func TestConcurrentAddSetOrder(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	reg := session.NewRegistry(store, discardLogger())
	s, err := reg.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := reg.AddSet(ctx, s.ID, "Squat", 5, float64(100+i)); err != nil {
				t.Errorf("AddSet: %v", err)
			}
		}()
	}
	wg.Wait()

	tr, err := reg.Tracker(ctx, s.ID)
	if err != nil {
		t.Fatalf("Tracker: %v", err)
	}
	sets := tr.Sets("Squat")
	if len(sets) != n || len(store.rows) != n {
		t.Fatalf("tracker sets = %d, stored rows = %d, want %d", len(sets), len(store.rows), n)
	}
	for i, row := range store.rows {
		if row.SetNumber != i+1 {
			t.Errorf("row %d set number = %d, want %d", i, row.SetNumber, i+1)
		}
		if row.Weight != sets[i].Weight {
			t.Errorf("row %d weight = %v, tracker has %v", i, row.Weight, sets[i].Weight)
		}
	}
}
