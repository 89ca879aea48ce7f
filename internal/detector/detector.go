// Package detector provides the pose landmark detector used by the frame pipeline.
package detector

import (
	"errors"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/pose"
)

// ErrServiceNotFound is returned when the pose service script cannot be located.
var ErrServiceNotFound = errors.New("pose_service.py not found")

// Detector defines the interface for pose detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the landmarks of the first
	// detected person, or nil if nobody is in frame.
	Detect(frame *gocv.Mat) (*pose.Keypoints, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// ScriptPath is the pose service script. Searched for when empty.
	ScriptPath string

	// PythonPath is the interpreter used to run the script. A virtualenv
	// interpreter is searched for when empty, then python3.
	PythonPath string

	// ModelPath is the pose landmarker .task asset passed to the service.
	ModelPath string

	// MinDetectionConf is the minimum pose detection confidence (0.0-1.0).
	MinDetectionConf float64

	// MinPresenceConf is the minimum pose presence confidence (0.0-1.0).
	MinPresenceConf float64

	// IdleTimeout stops the service after this long without a frame.
	IdleTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/pose_landmarker_full.task",
		MinDetectionConf: 0.5,
		MinPresenceConf:  0.5,
		IdleTimeout:      30 * time.Second,
	}
}
