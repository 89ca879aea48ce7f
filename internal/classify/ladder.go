// Package classify maps elbow angles to move and form labels.
//
// Both classifiers are threshold ladders: an ordered list of rungs, each a
// predicate on the angle and the label it yields, plus a fallback label when no
// rung matches. Every ladder is total over the real line, so an out-of-range or
// NaN input still produces a label.
package classify

// Label is a human-readable classification result.
type Label string

// Rung is a single step of a Ladder.
type Rung struct {
	Label Label
	Match func(angle float64) bool
}

// Ladder is an ordered threshold table. The first matching rung wins.
type Ladder struct {
	Rungs    []Rung
	Fallback Label
}

// Classify walks the rungs in order and returns the first matching label,
// or the fallback if none match.
func (l Ladder) Classify(angle float64) Label {
	for _, r := range l.Rungs {
		if r.Match(angle) {
			return r.Label
		}
	}
	return l.Fallback
}

// Labels returns every label the ladder can produce, in rung order.
func (l Ladder) Labels() []Label {
	labels := make([]Label, 0, len(l.Rungs)+1)
	for _, r := range l.Rungs {
		labels = append(labels, r.Label)
	}
	return append(labels, l.Fallback)
}

// below matches angles strictly less than limit.
func below(limit float64) func(float64) bool {
	return func(angle float64) bool { return angle < limit }
}

// above matches angles strictly greater than limit.
func above(limit float64) func(float64) bool {
	return func(angle float64) bool { return angle > limit }
}
