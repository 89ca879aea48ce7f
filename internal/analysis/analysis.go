// Package analysis turns one frame's keypoints into angles and labels.
package analysis

import (
	"math"

	"github.com/ayusman/shadowbox/internal/classify"
	"github.com/ayusman/shadowbox/internal/feedback"
	"github.com/ayusman/shadowbox/internal/geometry"
	"github.com/ayusman/shadowbox/internal/pose"
)

// Result is everything derived from a single frame. Angles are in degrees and
// NaN when the joint was degenerate or no person was detected.
type Result struct {
	Person bool

	Move      classify.Label
	LeftElbow float64

	RightElbow    float64
	RightElbowDeg int
	Form          classify.Label
	FormOK        bool

	LeftKnee  float64
	RightKnee float64

	Posture feedback.Report
}

// Analyze computes the move and form labels for a frame.
// It holds no state between calls.
func Analyze(kp *pose.Keypoints) Result {
	res := Result{
		Move:       classify.Move(kp),
		LeftElbow:  math.NaN(),
		RightElbow: math.NaN(),
		LeftKnee:   math.NaN(),
		RightKnee:  math.NaN(),
	}
	if kp == nil {
		return res
	}
	res.Person = true
	res.Posture = feedback.Evaluate(kp)

	res.LeftElbow = geometry.Angle(kp.Arm(classify.MoveArm))
	res.RightElbow = geometry.Angle(kp.Arm(classify.FormArm))
	res.LeftKnee = geometry.Angle(kp.Leg(pose.Left))
	res.RightKnee = geometry.Angle(kp.Leg(pose.Right))

	if deg, ok := geometry.TruncDegrees(res.RightElbow); ok {
		res.RightElbowDeg = deg
		res.Form = classify.Form(deg)
		res.FormOK = true
	}

	return res
}
