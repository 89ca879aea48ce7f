package app

import "gocv.io/x/gocv"

// Display shows annotated frames.
type Display interface {
	// Show presents the frame and returns the key pressed while waiting,
	// or -1 if none was.
	Show(frame *gocv.Mat) int
	Close() error
}

// WindowDisplay shows frames in an OpenCV window.
type WindowDisplay struct {
	window *gocv.Window
	waitMs int
}

// NewWindowDisplay opens a window with the given title.
func NewWindowDisplay(title string) *WindowDisplay {
	return &WindowDisplay{
		window: gocv.NewWindow(title),
		waitMs: 1,
	}
}

// Show draws the frame and polls the keyboard for waitMs milliseconds.
func (d *WindowDisplay) Show(frame *gocv.Mat) int {
	d.window.IMShow(*frame)
	return d.window.WaitKey(d.waitMs)
}

// Close destroys the window.
func (d *WindowDisplay) Close() error {
	return d.window.Close()
}
