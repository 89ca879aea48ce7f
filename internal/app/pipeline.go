package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/classify"
)

// escKey is the key code WaitKey reports for Escape.
const escKey = 27

// Run is the main capture loop. Each frame is read, detected, classified,
// drawn and shown before the next one is read; nothing is buffered.
//
// The loop ends without error when ctx is cancelled, when the quit key is
// pressed or when a finite source runs out of frames. A nil display runs
// headless. The camera is opened on entry and closed on return.
func (a *App) Run(ctx context.Context, display Display) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}()

	log.Println("Detection pipeline started")
	defer log.Println("Detection pipeline stopped")

	lastMove := classify.Label("")
	failures := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, err := a.camera.ReadFrame()
		if errors.Is(err, capture.ErrEndOfStream) {
			log.Println("End of stream")
			return nil
		}
		if err != nil {
			failures++
			log.Printf("Error reading frame: %v", err)
			if failures >= MaxReadFailures {
				return fmt.Errorf("read frame: %d consecutive failures: %w", failures, err)
			}
			continue
		}
		failures = 0

		if a.IsEnabled() {
			res, err := a.ProcessFrame(frame)
			if err != nil {
				log.Printf("Error detecting pose: %v", err)
			}
			if moveChanged(lastMove, res.Move) {
				log.Printf("Move: %s", res.Move)
				lastMove = res.Move
			}
		}

		key := -1
		if display != nil {
			key = display.Show(frame)
		}
		frame.Close()

		if a.isQuitKey(key) {
			return nil
		}
	}
}

func (a *App) isQuitKey(key int) bool {
	if key < 0 {
		return false
	}
	key &= 0xFF
	return key == int(a.config.QuitKey) || key == escKey
}
