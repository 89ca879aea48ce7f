// Package app runs the frame pipeline: capture, pose detection, classification and rendering.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/analysis"
	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/classify"
	"github.com/ayusman/shadowbox/internal/detector"
	"github.com/ayusman/shadowbox/internal/overlay"
	"github.com/ayusman/shadowbox/internal/stats"
)

// MaxReadFailures is how many consecutive failed frame reads end the loop.
const MaxReadFailures = 30

// Config holds configuration options for the application.
type Config struct {
	// QuitKey ends the loop when pressed in the display window. ESC always quits.
	QuitKey byte
	// ComboTimeout is passed to the round tracker.
	ComboTimeout time.Duration
}

// ResultFunc receives every processed frame's result.
type ResultFunc func(res analysis.Result, snap stats.Snapshot)

// App wires a frame source and a pose detector to the classifiers.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	tracker  *stats.Tracker
	enabled  bool
	onResult ResultFunc
	last     analysis.Result
	mu       sync.RWMutex
}

// New creates a new App. The detector is created once by the caller and
// owned by the App from here on; Close releases it.
func New(config Config, camera capture.Camera, det detector.Detector) *App {
	if config.QuitKey == 0 {
		config.QuitKey = 'q'
	}

	return &App{
		config:   config,
		camera:   camera,
		detector: det,
		tracker:  stats.NewTracker(stats.WithComboTimeout(config.ComboTimeout)),
		enabled:  true,
		last:     analysis.Analyze(nil),
	}
}

// SetEnabled pauses or resumes detection. Frames are still shown while paused.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnResult registers a callback invoked after every processed frame.
func (a *App) OnResult(fn ResultFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onResult = fn
}

// ResetRound clears the punch statistics and starts a new round.
func (a *App) ResetRound() {
	a.tracker.Reset()
	log.Printf("Started round %s", a.tracker.Snapshot().RoundID)
}

// Stats returns the current round statistics.
func (a *App) Stats() stats.Snapshot {
	return a.tracker.Snapshot()
}

// LastResult returns the most recent frame result.
func (a *App) LastResult() analysis.Result {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

// ProcessFrame runs detection and classification on one frame and draws the
// result onto it. A detection failure degrades the frame to "No Person" and is
// returned so the caller can log it; it never aborts the frame.
func (a *App) ProcessFrame(frame *gocv.Mat) (analysis.Result, error) {
	kp, detErr := a.detector.Detect(frame)
	if detErr != nil {
		detErr = fmt.Errorf("detect pose: %w", detErr)
		kp = nil
	}

	res := analysis.Analyze(kp)

	if a.tracker.Record(res.Move) {
		snap := a.tracker.Snapshot()
		log.Printf("Strike: %s (total %d, combos %d)", res.Move, snap.Total, snap.Combos)
	}
	snap := a.tracker.Snapshot()

	overlay.Draw(frame, kp, res, snap)

	a.mu.Lock()
	a.last = res
	callback := a.onResult
	a.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(res, snap)
	}

	return res, detErr
}

// Close releases the detector.
func (a *App) Close() error {
	if a.detector == nil {
		return nil
	}
	return a.detector.Close()
}

// moveChanged is used to keep the log readable: only label changes are logged.
func moveChanged(prev, next classify.Label) bool {
	return prev != next
}
