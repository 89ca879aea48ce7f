// Package feedback checks a fighter's posture in a single frame and returns
// coaching cues.
//
// Each check is a Rule: a predicate on the keypoints and the cue it yields.
// Every rule that matches contributes its cue, in table order. Distances are
// in normalized image units (0..1 of the frame width or height), calibrated
// for a 640x480 frame.
package feedback

import (
	"math"
	"strings"

	"github.com/ayusman/shadowbox/internal/pose"
)

// Posture thresholds in normalized image units.
const (
	// GuardDrop is how far a wrist may sit below its shoulder.
	GuardDrop = 40.0 / 480
	// ElbowFlare is the widest horizontal gap allowed between elbow and shoulder.
	ElbowFlare = 80.0 / 640
	// StanceMin and StanceMax bound the horizontal distance between the ankles.
	StanceMin = 140.0 / 640
	StanceMax = 300.0 / 640
	// HipTurnMin is the narrowest hip line before the hips count as unturned.
	HipTurnMin = 25.0 / 640
	// ShoulderTurnMin is the narrowest shoulder line.
	ShoulderTurnMin = 20.0 / 640
)

// Report texts for the cases with no cues.
const (
	NoPoseMessage = "No pose detected"
	GoodMessage   = "Great stance! Strong posture."
	cueSeparator  = " | "
)

// Rule is a single posture check.
type Rule struct {
	Cue   string
	Check func(kp *pose.Keypoints) bool
}

// Rules is the posture table, in the order cues are reported.
var Rules = []Rule{
	{Cue: "Raise your LEFT guard", Check: guardDropped(pose.Left)},
	{Cue: "Raise your RIGHT guard", Check: guardDropped(pose.Right)},
	{Cue: "Keep LEFT elbow tighter", Check: elbowFlared(pose.Left)},
	{Cue: "Keep RIGHT elbow tighter", Check: elbowFlared(pose.Right)},
	{Cue: "Widen your stance slightly", Check: func(kp *pose.Keypoints) bool {
		return stanceWidth(kp) < StanceMin
	}},
	{Cue: "Narrow your stance a bit", Check: func(kp *pose.Keypoints) bool {
		return stanceWidth(kp) > StanceMax
	}},
	{Cue: "Rotate your hips more", Check: func(kp *pose.Keypoints) bool {
		return spread(kp, pose.LeftHip, pose.RightHip) < HipTurnMin
	}},
	{Cue: "Square your shoulders less", Check: func(kp *pose.Keypoints) bool {
		return spread(kp, pose.LeftShoulder, pose.RightShoulder) < ShoulderTurnMin
	}},
}

// Report is the posture verdict for one frame.
type Report struct {
	Person bool
	Cues   []string
}

// Evaluate runs every rule against kp. A nil kp yields a report with Person unset.
func Evaluate(kp *pose.Keypoints) Report {
	if kp == nil {
		return Report{}
	}

	r := Report{Person: true}
	for _, rule := range Rules {
		if rule.Check(kp) {
			r.Cues = append(r.Cues, rule.Cue)
		}
	}
	return r
}

// Good reports whether a person was seen and no rule fired.
func (r Report) Good() bool {
	return r.Person && len(r.Cues) == 0
}

// String joins the cues into one line.
func (r Report) String() string {
	switch {
	case !r.Person:
		return NoPoseMessage
	case len(r.Cues) == 0:
		return GoodMessage
	}
	return strings.Join(r.Cues, cueSeparator)
}

func guardDropped(side pose.Side) func(*pose.Keypoints) bool {
	return func(kp *pose.Keypoints) bool {
		shoulder, _, wrist := kp.Arm(side)
		return wrist.Y > shoulder.Y+GuardDrop
	}
}

func elbowFlared(side pose.Side) func(*pose.Keypoints) bool {
	return func(kp *pose.Keypoints) bool {
		shoulder, elbow, _ := kp.Arm(side)
		return math.Abs(elbow.X-shoulder.X) > ElbowFlare
	}
}

func stanceWidth(kp *pose.Keypoints) float64 {
	return spread(kp, pose.LeftAnkle, pose.RightAnkle)
}

// spread is the horizontal distance between two landmarks.
func spread(kp *pose.Keypoints, a, b int) float64 {
	return math.Abs(kp[a].X - kp[b].X)
}
