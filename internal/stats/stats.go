// Package stats tracks punch counts and combos over a training round.
package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/shadowbox/internal/classify"
)

// DefaultComboTimeout is the longest gap between strikes that still chains them into a combo.
const DefaultComboTimeout = 650 * time.Millisecond

// Snapshot is a point-in-time copy of the round statistics.
type Snapshot struct {
	RoundID      string           `json:"round_id"`
	StartedAt    time.Time        `json:"started_at"`
	Total        int              `json:"total"`
	Jabs         int              `json:"jabs"`
	Crosses      int              `json:"crosses"`
	Combos       int              `json:"combos"`
	CurrentCombo []classify.Label `json:"current_combo"`
	LastStrike   classify.Label   `json:"last_strike,omitempty"`
}

// Tracker counts strikes from the per-frame move labels.
//
// Move labels repeat on every frame a pose is held, so a strike is counted
// only on the frame where the label changes into Jab or Cross.
type Tracker struct {
	mu           sync.Mutex
	now          func() time.Time
	comboTimeout time.Duration

	roundID    string
	startedAt  time.Time
	total      int
	jabs       int
	crosses    int
	combos     int
	combo      []classify.Label
	lastLabel  classify.Label
	lastStrike time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithComboTimeout overrides DefaultComboTimeout. Non-positive values are ignored.
func WithComboTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.comboTimeout = d
		}
	}
}

// NewTracker creates a Tracker and starts its first round.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now:          time.Now,
		comboTimeout: DefaultComboTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.resetLocked()
	return t
}

// Record feeds one frame's move label. It reports whether a new strike was counted.
func (t *Tracker) Record(label classify.Label) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.lastLabel
	t.lastLabel = label

	if !classify.IsStrike(label) || label == prev {
		return false
	}

	now := t.now()
	t.total++
	switch label {
	case classify.Jab:
		t.jabs++
	case classify.Cross:
		t.crosses++
	}

	if len(t.combo) > 0 && now.Sub(t.lastStrike) < t.comboTimeout {
		t.combo = append(t.combo, label)
		if len(t.combo) == 2 {
			t.combos++
		}
	} else {
		t.combo = []classify.Label{label}
	}
	t.lastStrike = now

	return true
}

// Snapshot returns the current round statistics.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		RoundID:      t.roundID,
		StartedAt:    t.startedAt,
		Total:        t.total,
		Jabs:         t.jabs,
		Crosses:      t.crosses,
		Combos:       t.combos,
		CurrentCombo: append([]classify.Label(nil), t.combo...),
	}
	if len(t.combo) > 0 {
		s.LastStrike = t.combo[len(t.combo)-1]
	}
	return s
}

// Reset discards all counts and starts a new round with a fresh ID.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Tracker) resetLocked() {
	t.roundID = uuid.New().String()
	t.startedAt = t.now()
	t.total = 0
	t.jabs = 0
	t.crosses = 0
	t.combos = 0
	t.combo = nil
	t.lastLabel = ""
	t.lastStrike = time.Time{}
}
