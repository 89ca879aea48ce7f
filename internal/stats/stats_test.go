package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/shadowbox/internal/classify"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewTracker(WithClock(clock.now)), clock
}

func TestTracker_CountsOnEdge(t *testing.T) {
	tr, clock := newTestTracker()

	labels := []classify.Label{
		classify.NoPerson,
		classify.Jab, classify.Jab, classify.Jab, // held jab counts once
		classify.Unknown,
		classify.Cross, classify.Cross,
		classify.NoPerson,
		classify.Jab,
	}

	counted := 0
	for _, l := range labels {
		if tr.Record(l) {
			counted++
		}
		clock.advance(time.Second)
	}

	s := tr.Snapshot()
	if counted != 3 {
		t.Errorf("Record() reported %d strikes, want 3", counted)
	}
	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.Jabs != 2 {
		t.Errorf("Jabs = %d, want 2", s.Jabs)
	}
	if s.Crosses != 1 {
		t.Errorf("Crosses = %d, want 1", s.Crosses)
	}
	if s.Combos != 0 {
		t.Errorf("Combos = %d, want 0 (strikes were a second apart)", s.Combos)
	}
}

func TestTracker_JabToCrossWithoutGap(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Record(classify.Jab)
	clock.advance(100 * time.Millisecond)
	tr.Record(classify.Cross)

	s := tr.Snapshot()
	if s.Total != 2 {
		t.Errorf("Total = %d, want 2", s.Total)
	}
	if s.Combos != 1 {
		t.Errorf("Combos = %d, want 1", s.Combos)
	}
	if s.LastStrike != classify.Cross {
		t.Errorf("LastStrike = %q, want %q", s.LastStrike, classify.Cross)
	}
}

func TestTracker_Combos(t *testing.T) {
	tests := []struct {
		name       string
		gaps       []time.Duration
		wantCombos int
		wantChain  int
	}{
		{
			name:       "single strike",
			gaps:       nil,
			wantCombos: 0,
			wantChain:  1,
		},
		{
			name:       "one-two",
			gaps:       []time.Duration{300 * time.Millisecond},
			wantCombos: 1,
			wantChain:  2,
		},
		{
			name:       "three punch chain counts once",
			gaps:       []time.Duration{200 * time.Millisecond, 400 * time.Millisecond},
			wantCombos: 1,
			wantChain:  3,
		},
		{
			name:       "gap at timeout breaks chain",
			gaps:       []time.Duration{DefaultComboTimeout},
			wantCombos: 0,
			wantChain:  1,
		},
		{
			name:       "two separate combos",
			gaps:       []time.Duration{100 * time.Millisecond, 2 * time.Second, 100 * time.Millisecond},
			wantCombos: 2,
			wantChain:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, clock := newTestTracker()

			// Alternate jab and unknown so every strike is a fresh edge.
			tr.Record(classify.Jab)
			for _, gap := range tt.gaps {
				tr.Record(classify.Unknown)
				clock.advance(gap)
				tr.Record(classify.Jab)
			}

			s := tr.Snapshot()
			if s.Combos != tt.wantCombos {
				t.Errorf("Combos = %d, want %d", s.Combos, tt.wantCombos)
			}
			if len(s.CurrentCombo) != tt.wantChain {
				t.Errorf("len(CurrentCombo) = %d, want %d", len(s.CurrentCombo), tt.wantChain)
			}
		})
	}
}

func TestTracker_Reset(t *testing.T) {
	tr, clock := newTestTracker()

	first := tr.Snapshot()
	if _, err := uuid.Parse(first.RoundID); err != nil {
		t.Fatalf("RoundID %q is not a UUID: %v", first.RoundID, err)
	}

	tr.Record(classify.Jab)
	clock.advance(time.Minute)
	tr.Reset()

	s := tr.Snapshot()
	if s.Total != 0 || s.Jabs != 0 || s.Combos != 0 || len(s.CurrentCombo) != 0 {
		t.Errorf("expected empty stats after Reset, got %+v", s)
	}
	if s.RoundID == first.RoundID {
		t.Error("expected a new round ID after Reset")
	}
	if !s.StartedAt.Equal(clock.t) {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, clock.t)
	}

	// A jab held across the reset counts again in the new round.
	if !tr.Record(classify.Jab) {
		t.Error("expected first jab of a new round to count")
	}
}

func TestTracker_SnapshotIsCopy(t *testing.T) {
	tr, _ := newTestTracker()
	tr.Record(classify.Jab)

	s := tr.Snapshot()
	s.CurrentCombo[0] = classify.Cross

	if got := tr.Snapshot().CurrentCombo[0]; got != classify.Jab {
		t.Errorf("CurrentCombo[0] = %q after mutating a snapshot, want %q", got, classify.Jab)
	}
}

func TestWithComboTimeout(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := NewTracker(WithClock(clock.now), WithComboTimeout(2*time.Second))

	tr.Record(classify.Jab)
	tr.Record(classify.Unknown)
	clock.advance(time.Second)
	tr.Record(classify.Cross)

	if got := tr.Snapshot().Combos; got != 1 {
		t.Errorf("Combos = %d, want 1 with a 2s timeout", got)
	}

	ignored := NewTracker(WithComboTimeout(-time.Second))
	if ignored.comboTimeout != DefaultComboTimeout {
		t.Errorf("comboTimeout = %v, want default for negative option", ignored.comboTimeout)
	}
}
