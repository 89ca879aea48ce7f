package classify

import (
	"github.com/ayusman/shadowbox/internal/geometry"
	"github.com/ayusman/shadowbox/internal/pose"
)

// Move labels.
const (
	NoPerson Label = "No Person"
	Jab      Label = "Jab"
	Cross    Label = "Cross"
	Unknown  Label = "Unknown"
)

// Move thresholds in degrees. Both bounds are exclusive, so exactly
// JabMaxAngle or CrossMinAngle classifies as Unknown.
const (
	JabMaxAngle   = 40.0
	CrossMinAngle = 140.0
)

// MoveArm is the arm whose elbow angle drives the move classifier.
const MoveArm = pose.Left

// MoveLadder classifies a full-precision left elbow angle.
var MoveLadder = Ladder{
	Rungs: []Rung{
		{Label: Jab, Match: below(JabMaxAngle)},
		{Label: Cross, Match: above(CrossMinAngle)},
	},
	Fallback: Unknown,
}

// Move classifies the strike for one frame. A nil keypoint set means no
// person was detected and yields NoPerson.
func Move(kp *pose.Keypoints) Label {
	if kp == nil {
		return NoPerson
	}
	shoulder, elbow, wrist := kp.Arm(MoveArm)
	return MoveFromAngle(geometry.Angle(shoulder, elbow, wrist))
}

// MoveFromAngle classifies an already computed left elbow angle.
// The degenerate NaN sentinel falls through to Unknown.
func MoveFromAngle(angle float64) Label {
	return MoveLadder.Classify(angle)
}

// IsStrike reports whether l is a punch label.
func IsStrike(l Label) bool {
	return l == Jab || l == Cross
}
