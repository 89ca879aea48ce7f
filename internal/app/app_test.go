package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/analysis"
	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/classify"
	"github.com/ayusman/shadowbox/internal/detector"
	"github.com/ayusman/shadowbox/internal/pose"
	"github.com/ayusman/shadowbox/internal/stats"
)

// fakeDisplay records shown frames and replays scripted key presses.
type fakeDisplay struct {
	keys   []int
	shown  int
	closed bool
}

func (d *fakeDisplay) Show(frame *gocv.Mat) int {
	d.shown++
	if len(d.keys) == 0 {
		return -1
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

func newTestApp(t *testing.T, frames int, loop bool) (*App, *capture.MockCamera, *detector.MockDetector) {
	t.Helper()

	mats := capture.BlankFrames(frames, 320, 240)
	t.Cleanup(func() {
		for _, m := range mats {
			m.Close()
		}
	})

	cam := capture.NewMockCamera(mats, loop)
	det := detector.NewMockDetector()
	return New(Config{}, cam, det), cam, det
}

func TestApp_ProcessFrame(t *testing.T) {
	a, _, det := newTestApp(t, 0, false)

	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()

	t.Run("no person", func(t *testing.T) {
		res, err := a.ProcessFrame(&frame)
		if err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
		if res.Move != classify.NoPerson {
			t.Errorf("Move = %q, want %q", res.Move, classify.NoPerson)
		}
		if res.FormOK {
			t.Error("form must not be classified without a person")
		}
	})

	t.Run("cross", func(t *testing.T) {
		det.SetPose(detector.CrossPose())

		res, err := a.ProcessFrame(&frame)
		if err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
		if res.Move != classify.Cross {
			t.Errorf("Move = %q, want %q", res.Move, classify.Cross)
		}
		if res.Form != classify.FullExtension {
			t.Errorf("Form = %q, want %q", res.Form, classify.FullExtension)
		}
		if a.LastResult().Move != classify.Cross {
			t.Errorf("LastResult().Move = %q, want %q", a.LastResult().Move, classify.Cross)
		}
		if a.Stats().Crosses != 1 {
			t.Errorf("Stats().Crosses = %d, want 1", a.Stats().Crosses)
		}
	})

	t.Run("detection error degrades frame", func(t *testing.T) {
		det.SetError(errors.New("service crashed"))
		defer det.SetError(nil)

		res, err := a.ProcessFrame(&frame)
		if err == nil {
			t.Error("expected detection error to be returned")
		}
		if res.Move != classify.NoPerson {
			t.Errorf("Move = %q, want %q", res.Move, classify.NoPerson)
		}
	})
}

func TestApp_OnResult(t *testing.T) {
	a, _, det := newTestApp(t, 0, false)
	det.SetScript([]*pose.Keypoints{detector.JabPose(), detector.GuardPose(), detector.JabPose()}, false)

	var moves []classify.Label
	var last stats.Snapshot
	a.OnResult(func(res analysis.Result, snap stats.Snapshot) {
		moves = append(moves, res.Move)
		last = snap
	})

	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < 3; i++ {
		a.ProcessFrame(&frame)
	}

	want := []classify.Label{classify.Jab, classify.Unknown, classify.Jab}
	if len(moves) != len(want) {
		t.Fatalf("callback saw %v, want %v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %q, want %q", i, moves[i], want[i])
		}
	}
	if last.Jabs != 2 {
		t.Errorf("Jabs = %d, want 2", last.Jabs)
	}
}

func TestApp_Run_EndOfStream(t *testing.T) {
	a, cam, det := newTestApp(t, 4, false)
	det.SetScript([]*pose.Keypoints{nil, detector.JabPose(), detector.JabPose(), detector.CrossPose()}, false)

	display := &fakeDisplay{}
	if err := a.Run(context.Background(), display); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if display.shown != 4 {
		t.Errorf("shown %d frames, want 4", display.shown)
	}
	if det.Calls() != 4 {
		t.Errorf("detector called %d times, want 4", det.Calls())
	}
	if cam.IsOpen() {
		t.Error("camera should be closed after Run returns")
	}

	snap := a.Stats()
	if snap.Jabs != 1 || snap.Crosses != 1 {
		t.Errorf("Stats() = %+v, want 1 jab and 1 cross", snap)
	}
}

func TestApp_Run_QuitKey(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		want int
	}{
		{name: "q", keys: []int{-1, -1, 'q'}, want: 3},
		{name: "escape", keys: []int{27}, want: 1},
		{name: "high bits masked", keys: []int{-1, 0x100000 | 'q'}, want: 2},
		{name: "other keys ignored then q", keys: []int{'a', ' ', 'q'}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t, 1, true)

			display := &fakeDisplay{keys: tt.keys}
			if err := a.Run(context.Background(), display); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if display.shown != tt.want {
				t.Errorf("shown %d frames, want %d", display.shown, tt.want)
			}
		})
	}
}

func TestApp_Run_CustomQuitKey(t *testing.T) {
	mats := capture.BlankFrames(1, 320, 240)
	defer mats[0].Close()

	a := New(Config{QuitKey: 'x'}, capture.NewMockCamera(mats, true), detector.NewMockDetector())

	display := &fakeDisplay{keys: []int{'q', 'x'}}
	if err := a.Run(context.Background(), display); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if display.shown != 2 {
		t.Errorf("shown %d frames, want 2 ('q' is not the quit key)", display.shown)
	}
}

func TestApp_Run_ContextCancel(t *testing.T) {
	a, _, _ := newTestApp(t, 1, true)

	ctx, cancel := context.WithCancel(context.Background())
	shown := 0
	a.OnResult(func(analysis.Result, stats.Snapshot) {
		shown++
		if shown == 5 {
			cancel()
		}
	})

	if err := a.Run(ctx, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if shown != 5 {
		t.Errorf("processed %d frames, want 5", shown)
	}
}

func TestApp_Run_Paused(t *testing.T) {
	a, _, det := newTestApp(t, 3, false)
	det.SetPose(detector.JabPose())
	a.SetEnabled(false)

	display := &fakeDisplay{}
	if err := a.Run(context.Background(), display); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if det.Calls() != 0 {
		t.Errorf("detector called %d times while paused, want 0", det.Calls())
	}
	if display.shown != 3 {
		t.Errorf("shown %d frames, want 3", display.shown)
	}
	if a.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}
}

func TestApp_Run_CameraNotOpen(t *testing.T) {
	a := New(Config{}, &failingCamera{}, detector.NewMockDetector())

	err := a.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected Run() to fail after repeated read errors")
	}
}

func TestApp_ResetRound(t *testing.T) {
	a, _, det := newTestApp(t, 0, false)
	det.SetPose(detector.CrossPose())

	frame := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()
	a.ProcessFrame(&frame)

	before := a.Stats()
	a.ResetRound()
	after := a.Stats()

	if after.Total != 0 {
		t.Errorf("Total = %d after reset, want 0", after.Total)
	}
	if after.RoundID == before.RoundID {
		t.Error("expected a new round ID")
	}
}

func TestApp_Close(t *testing.T) {
	a, _, det := newTestApp(t, 0, false)

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !det.Closed() {
		t.Error("expected detector to be closed")
	}
}

func TestApp_InitialResult(t *testing.T) {
	a, _, _ := newTestApp(t, 0, false)

	res := a.LastResult()
	if res.Move != classify.NoPerson || !math.IsNaN(res.RightElbow) {
		t.Errorf("LastResult() before any frame = %+v", res)
	}
}

// failingCamera opens but never yields a frame.
type failingCamera struct {
	open bool
}

func (c *failingCamera) Open() error  { c.open = true; return nil }
func (c *failingCamera) Close() error { c.open = false; return nil }
func (c *failingCamera) ReadFrame() (*gocv.Mat, error) {
	return nil, errors.New("device unplugged")
}
func (c *failingCamera) SetFPS(int)   {}
func (c *failingCamera) FPS() int     { return capture.DefaultFPS }
func (c *failingCamera) IsOpen() bool { return c.open }
