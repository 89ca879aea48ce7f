package detector

import (
	"math"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/pose"
)

// MockDetector is a test implementation of the Detector interface.
// It replays a scripted sequence of poses, one per Detect call.
// A nil entry in the script simulates a frame with nobody in it.
type MockDetector struct {
	mu     sync.Mutex
	script []*pose.Keypoints
	index  int
	loop   bool
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance that detects nobody.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPose makes every subsequent Detect call return kp.
func (m *MockDetector) SetPose(kp *pose.Keypoints) {
	m.SetScript([]*pose.Keypoints{kp}, true)
}

// SetScript sets the sequence of poses returned by Detect. Without loop the
// detector reports no person once the script is exhausted.
func (m *MockDetector) SetScript(script []*pose.Keypoints, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = script
	m.index = 0
	m.loop = loop
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted pose or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*pose.Keypoints, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) == 0 {
		return nil, nil
	}
	if m.index >= len(m.script) {
		if !m.loop {
			return nil, nil
		}
		m.index = 0
	}

	kp := m.script[m.index]
	m.index++
	if kp == nil {
		return nil, nil
	}

	// Hand out a copy so callers can't mutate the script.
	out := *kp
	return &out, nil
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close marks the mock as closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// StancePose returns a standing fighter with each elbow bent to the given
// interior angle in degrees. Upper arms hang straight down from the shoulders
// and forearms rotate outward, so the elbow angles come out exactly.
func StancePose(leftElbow, rightElbow float64) *pose.Keypoints {
	var kp pose.Keypoints

	set := func(i int, x, y float64) {
		kp[i] = pose.Landmark{X: x, Y: y, Visibility: 0.99, Presence: 0.99}
	}

	// Head
	set(pose.Nose, 0.50, 0.18)
	set(pose.LeftEyeInner, 0.52, 0.16)
	set(pose.LeftEye, 0.53, 0.16)
	set(pose.LeftEyeOuter, 0.54, 0.16)
	set(pose.RightEyeInner, 0.48, 0.16)
	set(pose.RightEye, 0.47, 0.16)
	set(pose.RightEyeOuter, 0.46, 0.16)
	set(pose.LeftEar, 0.56, 0.17)
	set(pose.RightEar, 0.44, 0.17)
	set(pose.MouthLeft, 0.52, 0.21)
	set(pose.MouthRight, 0.48, 0.21)

	// Torso and legs in a slightly bent stance. The subject faces the
	// camera, so the body's left side is on the image right.
	set(pose.LeftShoulder, 0.60, 0.32)
	set(pose.RightShoulder, 0.40, 0.32)
	set(pose.LeftHip, 0.57, 0.60)
	set(pose.RightHip, 0.43, 0.60)
	set(pose.LeftKnee, 0.60, 0.77)
	set(pose.RightKnee, 0.40, 0.77)
	set(pose.LeftAnkle, 0.60, 0.94)
	set(pose.RightAnkle, 0.40, 0.94)
	set(pose.LeftHeel, 0.59, 0.96)
	set(pose.RightHeel, 0.41, 0.96)
	set(pose.LeftFootIndex, 0.63, 0.97)
	set(pose.RightFootIndex, 0.37, 0.97)

	placeArm := func(shoulder, elbow, wrist, pinky, index, thumb int, angle, outward float64) {
		s := kp[shoulder]
		ex, ey := s.X, s.Y+0.14
		set(elbow, ex, ey)

		// Forearm direction: start pointing back up at the shoulder and
		// open by angle degrees.
		rad := angle * math.Pi / 180
		dx := outward * math.Sin(rad)
		dy := -math.Cos(rad)
		wx, wy := ex+0.13*dx, ey+0.13*dy
		set(wrist, wx, wy)
		set(pinky, wx+0.02*dx, wy+0.02*dy)
		set(index, wx+0.025*dx, wy+0.025*dy)
		set(thumb, wx+0.015*dx, wy+0.015*dy)
	}

	placeArm(pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist,
		pose.LeftPinky, pose.LeftIndex, pose.LeftThumb, leftElbow, 1)
	placeArm(pose.RightShoulder, pose.RightElbow, pose.RightWrist,
		pose.RightPinky, pose.RightIndex, pose.RightThumb, rightElbow, -1)

	return &kp
}

// GuardPose returns a fighter with both hands up: a half-bent left arm and
// a tightly bent right arm.
func GuardPose() *pose.Keypoints {
	return StancePose(90, 45)
}

// JabPose returns a fighter whose left elbow is tightly bent.
func JabPose() *pose.Keypoints {
	return StancePose(30, 50)
}

// CrossPose returns a fighter with both arms close to straight.
func CrossPose() *pose.Keypoints {
	return StancePose(165, 155)
}

// MiddlePunchPose returns a fighter with the right arm partially extended.
func MiddlePunchPose() *pose.Keypoints {
	return StancePose(100, 100)
}
