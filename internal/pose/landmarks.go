// Package pose provides body landmark types shared by the detector and the classifiers.
package pose

// Pose landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Side selects the left or right half of the body.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "Right"
	}
	return "Left"
}

// Point2D is a landmark position in normalized image coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Landmark is a single pose landmark as reported by the detector.
// Visibility and Presence are carried through but not used for classification.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
	Presence   float64 `json:"presence"`
}

// Point drops depth and scores.
func (l Landmark) Point() Point2D {
	return Point2D{X: l.X, Y: l.Y}
}

// Keypoints is the full landmark set for one person in one frame.
// A nil *Keypoints means no person was detected.
type Keypoints [NumLandmarks]Landmark

// Arm returns the shoulder, elbow and wrist positions for the given side.
func (k *Keypoints) Arm(side Side) (shoulder, elbow, wrist Point2D) {
	if side == Right {
		return k[RightShoulder].Point(), k[RightElbow].Point(), k[RightWrist].Point()
	}
	return k[LeftShoulder].Point(), k[LeftElbow].Point(), k[LeftWrist].Point()
}

// Leg returns the hip, knee and ankle positions for the given side.
func (k *Keypoints) Leg(side Side) (hip, knee, ankle Point2D) {
	if side == Right {
		return k[RightHip].Point(), k[RightKnee].Point(), k[RightAnkle].Point()
	}
	return k[LeftHip].Point(), k[LeftKnee].Point(), k[LeftAnkle].Point()
}

// Skeleton lists the landmark pairs drawn as limbs.
var Skeleton = [][2]int{
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow},
	{LeftElbow, LeftWrist},
	{RightShoulder, RightElbow},
	{RightElbow, RightWrist},
	{LeftHip, RightHip},
	{LeftShoulder, LeftHip},
	{RightShoulder, RightHip},
	{LeftHip, LeftKnee},
	{LeftKnee, LeftAnkle},
	{RightHip, RightKnee},
	{RightKnee, RightAnkle},
}
