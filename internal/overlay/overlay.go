// Package overlay draws landmarks, angles and labels onto video frames using GoCV.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/analysis"
	"github.com/ayusman/shadowbox/internal/pose"
	"github.com/ayusman/shadowbox/internal/stats"
)

// Drawing style.
var (
	JointColor   = color.RGBA{G: 255, A: 255}
	LimbColor    = color.RGBA{R: 180, G: 255, B: 255, A: 255}
	AngleColor   = color.RGBA{G: 255, A: 255}
	FormColor    = color.RGBA{G: 255, B: 255, A: 255}
	MoveColor    = color.RGBA{R: 255, G: 180, B: 80, A: 255}
	StatsColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	PostureColor = color.RGBA{R: 80, G: 200, B: 255, A: 255}
)

const (
	jointRadius   = 5
	limbThickness = 2
	textScale     = 1.0
	textThickness = 2
	textX         = 30
	textTop       = 50
	lineSpacing   = 50
	tipScale      = 0.6
	tipThickness  = 1
	tipSpacing    = 28
)

// textLine is one line of overlay text. Tips are drawn smaller.
type textLine struct {
	text  string
	color color.RGBA
	tip   bool
}

// Lines returns the text lines drawn for a frame, top to bottom.
func Lines(res analysis.Result, snap stats.Snapshot) []string {
	layout := layoutText(res, snap)
	lines := make([]string, len(layout))
	for i, l := range layout {
		lines[i] = l.text
	}
	return lines
}

func layoutText(res analysis.Result, snap stats.Snapshot) []textLine {
	lines := make([]textLine, 0, 6)
	if res.Person {
		if res.FormOK {
			lines = append(lines,
				textLine{text: fmt.Sprintf("Right Elbow: %d deg", res.RightElbowDeg), color: AngleColor},
				textLine{text: fmt.Sprintf("Form: %s", res.Form), color: FormColor},
			)
		} else {
			lines = append(lines,
				textLine{text: "Right Elbow: --", color: AngleColor},
				textLine{text: "Form: --", color: FormColor},
			)
		}
	}
	lines = append(lines,
		textLine{text: fmt.Sprintf("Move: %s", res.Move), color: MoveColor},
		textLine{text: fmt.Sprintf("Punches: %d  Combos: %d", snap.Total, snap.Combos), color: StatsColor},
	)

	if res.Posture.Person {
		if res.Posture.Good() {
			lines = append(lines, textLine{text: res.Posture.String(), color: PostureColor, tip: true})
		}
		for _, cue := range res.Posture.Cues {
			lines = append(lines, textLine{text: "Tip: " + cue, color: PostureColor, tip: true})
		}
	}
	return lines
}

// Draw renders the skeleton and the frame's labels onto img in place.
// It does nothing for an empty image.
func Draw(img *gocv.Mat, kp *pose.Keypoints, res analysis.Result, snap stats.Snapshot) {
	if img == nil || img.Empty() {
		return
	}

	if kp != nil {
		drawSkeleton(img, kp)
	}

	y := textTop
	for _, l := range layoutText(res, snap) {
		scale, thickness, step := textScale, textThickness, lineSpacing
		if l.tip {
			scale, thickness, step = tipScale, tipThickness, tipSpacing
		}
		gocv.PutText(img, l.text, image.Pt(textX, y), gocv.FontHersheySimplex, scale, l.color, thickness)
		y += step
	}
}

// drawSkeleton draws limbs and joints. Landmarks are normalized, so they are
// scaled by the frame size first.
func drawSkeleton(img *gocv.Mat, kp *pose.Keypoints) {
	w, h := img.Cols(), img.Rows()
	toPixel := func(lm pose.Landmark) image.Point {
		return image.Pt(int(lm.X*float64(w)), int(lm.Y*float64(h)))
	}

	for _, limb := range pose.Skeleton {
		gocv.Line(img, toPixel(kp[limb[0]]), toPixel(kp[limb[1]]), LimbColor, limbThickness)
	}

	for _, lm := range kp {
		gocv.Circle(img, toPixel(lm), jointRadius, JointColor, -1)
	}
}
