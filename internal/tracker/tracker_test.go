package tracker

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/claude/liftcalc/internal/models"
)

// TestAddSetAndListExercises verifies exercises are listed once each, in
// first-logged order.
func TestAddSetAndListExercises(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Squat", 5, 225)
	mustAdd(t, tr, "Bench", 8, 155)
	mustAdd(t, tr, "Squat", 3, 245)

	want := []string{"Squat", "Bench"}
	if got := tr.Exercises(); !reflect.DeepEqual(got, want) {
		t.Errorf("Exercises() = %v, want %v", got, want)
	}
}

// TestAddSetValidatesInputs verifies each precondition and that a rejected
// set leaves no trace.
func TestAddSetValidatesInputs(t *testing.T) {
	cases := []struct {
		name     string
		exercise string
		reps     int
		weight   float64
	}{
		{"empty exercise", "", 5, 100},
		{"zero reps", "Squat", 0, 100},
		{"negative reps", "Squat", -2, 100},
		{"negative weight", "Squat", 5, -1},
	}
	tr := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tr.AddSet(tc.exercise, tc.reps, tc.weight)
			if !errors.Is(err, models.ErrInvalidArgument) {
				t.Errorf("AddSet error = %v, want ErrInvalidArgument", err)
			}
		})
	}
	if got := tr.Exercises(); len(got) != 0 {
		t.Errorf("Exercises() after rejected sets = %v, want empty", got)
	}
}

// TestAddSetZeroWeight verifies bodyweight sets (weight 0) are accepted.
func TestAddSetZeroWeight(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Pull-up", 10, 0)
	if got := tr.Volume("Pull-up"); got != 0 {
		t.Errorf("Volume(Pull-up) = %v, want 0", got)
	}
	if got := tr.Exercises(); len(got) != 1 {
		t.Errorf("Exercises() = %v, want [Pull-up]", got)
	}
}

// TestVolumeSpecificAndOverall verifies per-exercise and total tonnage.
func TestVolumeSpecificAndOverall(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Deadlift", 5, 315)
	mustAdd(t, tr, "Deadlift", 3, 335)
	mustAdd(t, tr, "Row", 10, 95)

	if got := tr.Volume("Deadlift"); got != 2580 {
		t.Errorf("Volume(Deadlift) = %v, want 2580", got)
	}
	if got := tr.Volume("Row"); got != 950 {
		t.Errorf("Volume(Row) = %v, want 950", got)
	}
	if got := tr.TotalVolume(); got != 3530 {
		t.Errorf("TotalVolume() = %v, want 3530", got)
	}
}

// TestVolumeSquatBench verifies the two-exercise example from the docs.
func TestVolumeSquatBench(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Squat", 5, 225)
	mustAdd(t, tr, "Bench", 8, 155)
	if got := tr.Volume("Squat"); got != 1125 {
		t.Errorf("Volume(Squat) = %v, want 1125", got)
	}
	if got := tr.TotalVolume(); got != 1125+1240 {
		t.Errorf("TotalVolume() = %v, want %v", got, 1125+1240)
	}
}

// TestVolumeMissingExercise verifies unknown exercises report zero rather than failing.
func TestVolumeMissingExercise(t *testing.T) {
	if got := New().Volume("Press"); got != 0 {
		t.Errorf("Volume(Press) = %v, want 0", got)
	}
}

// TestBest1RMEpley verifies the best Epley estimate across sets.
func TestBest1RMEpley(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Bench", 5, 185)
	mustAdd(t, tr, "Bench", 3, 195)

	want := math.Max(185*(1+5.0/30), 195*(1+3.0/30))
	if got := tr.Best1RM("Bench"); math.Abs(got-want) > 1e-4 {
		t.Errorf("Best1RM(Bench) = %v, want %v", got, want)
	}
}

// TestBest1RMNoSets verifies an exercise without sets reports 0.
func TestBest1RMNoSets(t *testing.T) {
	if got := New().Best1RM("Squat"); got != 0.0 {
		t.Errorf("Best1RM(Squat) = %v, want 0", got)
	}
}

// TestResetClearsEverything verifies reset returns every query to its empty baseline.
func TestResetClearsEverything(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Squat", 5, 225)
	mustAdd(t, tr, "Bench", 5, 185)
	tr.Reset()

	if got := tr.Exercises(); len(got) != 0 {
		t.Errorf("Exercises() = %v, want empty", got)
	}
	if got := tr.TotalVolume(); got != 0 {
		t.Errorf("TotalVolume() = %v, want 0", got)
	}
	if got := tr.Best1RM("Squat"); got != 0.0 {
		t.Errorf("Best1RM(Squat) = %v, want 0", got)
	}

	// Order restarts after reset.
	mustAdd(t, tr, "Bench", 5, 185)
	mustAdd(t, tr, "Squat", 5, 225)
	if got, want := tr.Exercises(), []string{"Bench", "Squat"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Exercises() after reset = %v, want %v", got, want)
	}
}

// TestExercisesReturnsCopy verifies callers cannot mutate tracker state via the returned slice.
func TestExercisesReturnsCopy(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Squat", 5, 225)
	names := tr.Exercises()
	names[0] = "Mutated"
	if got := tr.Exercises()[0]; got != "Squat" {
		t.Errorf("Exercises()[0] = %q, want Squat", got)
	}
}

// TestSetsAndSummary verifies per-exercise aggregates and insertion order.
func TestSetsAndSummary(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "Squat", 5, 225)
	mustAdd(t, tr, "Bench", 8, 155)
	mustAdd(t, tr, "Squat", 3, 245)

	sets := tr.Sets("Squat")
	want := []models.SetRecord{{Reps: 5, Weight: 225}, {Reps: 3, Weight: 245}}
	if !reflect.DeepEqual(sets, want) {
		t.Errorf("Sets(Squat) = %v, want %v", sets, want)
	}
	if got := tr.Sets("Deadlift"); len(got) != 0 {
		t.Errorf("Sets(Deadlift) = %v, want empty", got)
	}

	summary := tr.Summary()
	if len(summary) != 2 {
		t.Fatalf("Summary() len = %d, want 2", len(summary))
	}
	sq := summary[0]
	if sq.Exercise != "Squat" || sq.Sets != 2 || sq.TotalReps != 8 || sq.Volume != 1125+735 {
		t.Errorf("Summary()[0] = %+v", sq)
	}
	if want := 245 * (1 + 3.0/30); math.Abs(sq.Best1RM-want) > 1e-9 {
		t.Errorf("Summary()[0].Best1RM = %v, want %v", sq.Best1RM, want)
	}
	if summary[1].Exercise != "Bench" {
		t.Errorf("Summary()[1].Exercise = %q, want Bench", summary[1].Exercise)
	}
}

// TestLoad verifies stored rows are replayed in order and a bad row is rejected atomically.
func TestLoad(t *testing.T) {
	tr := New()
	rows := []models.WorkoutSetRow{
		{Exercise: "Row", Reps: 10, Weight: 95},
		{Exercise: "Deadlift", Reps: 5, Weight: 315},
		{Exercise: "Row", Reps: 8, Weight: 105},
	}
	if err := tr.Load(rows); err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if got, want := tr.Exercises(), []string{"Row", "Deadlift"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Exercises() = %v, want %v", got, want)
	}
	if got := tr.Volume("Row"); got != 950+840 {
		t.Errorf("Volume(Row) = %v, want %v", got, 950+840)
	}

	bad := []models.WorkoutSetRow{
		{Exercise: "Curl", Reps: 10, Weight: 30},
		{Exercise: "Curl", Reps: 0, Weight: 30},
	}
	if err := tr.Load(bad); !errors.Is(err, models.ErrInvalidArgument) {
		t.Fatalf("Load(bad) error = %v, want ErrInvalidArgument", err)
	}
	if got := tr.Sets("Curl"); len(got) != 0 {
		t.Errorf("Sets(Curl) after failed load = %v, want empty", got)
	}
}

// TestConcurrentAddSet verifies the tracker stays consistent under parallel writers.
func TestConcurrentAddSet(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tr.AddSet("Squat", 1, 100)
			_ = tr.TotalVolume()
		}()
	}
	wg.Wait()

	if got := len(tr.Sets("Squat")); got != 50 {
		t.Errorf("len(Sets(Squat)) = %d, want 50", got)
	}
	if got := tr.TotalVolume(); got != 5000 {
		t.Errorf("TotalVolume() = %v, want 5000", got)
	}
}

func mustAdd(t *testing.T, tr *Tracker, exercise string, reps int, weight float64) {
	t.Helper()
	if err := tr.AddSet(exercise, reps, weight); err != nil {
		t.Fatalf("AddSet(%q, %d, %v): %v", exercise, reps, weight, err)
	}
}
