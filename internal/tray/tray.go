// Package tray provides a system tray menu for controlling a shadowbox session.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/shadowbox/internal/analysis"
	"github.com/ayusman/shadowbox/internal/stats"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onReset  func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuMove    *systray.MenuItem
	menuForm    *systray.MenuItem
	menuPosture *systray.MenuItem
	menuStats   *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when detection is paused or resumed.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnReset sets the callback function to be called when a new round is requested.
func (t *Tray) OnReset(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called and must run on the main thread.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray, unblocking Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Shadowbox")
	systray.SetTooltip("Shadowbox punch trainer")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Pause or resume detection")
	systray.AddSeparator()

	t.menuMove = systray.AddMenuItem(MoveTitle(analysis.Analyze(nil)), "Current move")
	t.menuMove.Disable()
	t.menuForm = systray.AddMenuItem(FormTitle(analysis.Analyze(nil)), "Right arm form")
	t.menuForm.Disable()
	t.menuPosture = systray.AddMenuItem(PostureTitle(analysis.Analyze(nil)), "Posture feedback")
	t.menuPosture.Disable()
	t.menuStats = systray.AddMenuItem(StatsTitle(stats.Snapshot{}), "Round statistics")
	t.menuStats.Disable()
	systray.AddSeparator()
	t.mu.Unlock()

	menuReset := systray.AddMenuItem("New Round", "Reset punch counts")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Shadowbox")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuReset.ClickedCh:
				t.handleReset()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleReset() {
	t.mu.RLock()
	callback := t.onReset
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	t.Update(analysis.Analyze(nil), stats.Snapshot{})
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// Update refreshes the status items from the latest frame. It is safe to
// call from the pipeline goroutine and before the tray is ready.
func (t *Tray) Update(res analysis.Result, snap stats.Snapshot) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuMove != nil {
		t.menuMove.SetTitle(MoveTitle(res))
	}
	if t.menuForm != nil {
		t.menuForm.SetTitle(FormTitle(res))
	}
	if t.menuPosture != nil {
		t.menuPosture.SetTitle(PostureTitle(res))
	}
	if t.menuStats != nil {
		t.menuStats.SetTitle(StatsTitle(snap))
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Detecting"
	}
	return "○ Paused"
}

// MoveTitle is the menu text for the current move.
func MoveTitle(res analysis.Result) string {
	return "Move: " + string(res.Move)
}

// FormTitle is the menu text for the right arm form.
func FormTitle(res analysis.Result) string {
	if !res.FormOK {
		return "Form: --"
	}
	return fmt.Sprintf("Form: %s (%d°)", res.Form, res.RightElbowDeg)
}

// PostureTitle is the menu text for the posture feedback.
func PostureTitle(res analysis.Result) string {
	return "Posture: " + res.Posture.String()
}

// StatsTitle is the menu text for the round statistics.
func StatsTitle(snap stats.Snapshot) string {
	return fmt.Sprintf("Punches: %d  Jabs: %d  Crosses: %d  Combos: %d",
		snap.Total, snap.Jabs, snap.Crosses, snap.Combos)
}
