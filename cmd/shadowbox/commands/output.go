package commands

import (
	"fmt"
	"io"

	"github.com/ayusman/shadowbox/internal/analysis"
	"github.com/ayusman/shadowbox/internal/geometry"
	"github.com/ayusman/shadowbox/internal/stats"
)

func formatAngle(v float64) string {
	if geometry.IsDegenerate(v) {
		return "--"
	}
	return fmt.Sprintf("%.1f", v)
}

func printResult(w io.Writer, res analysis.Result) {
	fmt.Fprintf(w, "Move: %s\n", res.Move)
	if !res.Person {
		return
	}
	fmt.Fprintf(w, "Left Elbow: %s deg\n", formatAngle(res.LeftElbow))
	if res.FormOK {
		fmt.Fprintf(w, "Right Elbow: %d deg\n", res.RightElbowDeg)
		fmt.Fprintf(w, "Form: %s\n", res.Form)
	} else {
		fmt.Fprintln(w, "Right Elbow: --")
		fmt.Fprintln(w, "Form: --")
	}
	fmt.Fprintf(w, "Knees: left %s deg, right %s deg\n", formatAngle(res.LeftKnee), formatAngle(res.RightKnee))
	if res.Posture.Person {
		fmt.Fprintf(w, "Posture: %s\n", res.Posture)
	}
}

func printStats(w io.Writer, snap stats.Snapshot) {
	fmt.Fprintf(w, "Round %s: %d punches (%d jabs, %d crosses), %d combos\n",
		snap.RoundID, snap.Total, snap.Jabs, snap.Crosses, snap.Combos)
}
