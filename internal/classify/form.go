package classify

import "github.com/ayusman/shadowbox/internal/pose"

// Form labels.
const (
	Guard         Label = "Guard (arm bent)"
	MiddlePunch   Label = "Middle Punch"
	FullExtension Label = "Full Extension"
)

// Form thresholds in whole degrees.
const (
	GuardMaxAngle     = 70
	ExtensionMinAngle = 130
)

// FormArm is the arm whose elbow angle drives the form classifier.
const FormArm = pose.Right

// FormLadder classifies a truncated right elbow angle.
var FormLadder = Ladder{
	Rungs: []Rung{
		{Label: Guard, Match: below(GuardMaxAngle)},
		{Label: MiddlePunch, Match: below(ExtensionMinAngle)},
	},
	Fallback: FullExtension,
}

// Form classifies the guard or extension of the right arm from an elbow
// angle already truncated to whole degrees. There is no "no person" case:
// callers must not call Form for frames without a detected pose.
func Form(angleDeg int) Label {
	return FormLadder.Classify(float64(angleDeg))
}
