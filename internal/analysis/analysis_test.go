package analysis

import (
	"math"
	"testing"

	"github.com/ayusman/shadowbox/internal/classify"
	"github.com/ayusman/shadowbox/internal/detector"
	"github.com/ayusman/shadowbox/internal/pose"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		kp       *pose.Keypoints
		wantMove classify.Label
		wantForm classify.Label
		wantDeg  int
	}{
		{name: "guard", kp: detector.GuardPose(), wantMove: classify.Unknown, wantForm: classify.Guard, wantDeg: 44},
		{name: "jab", kp: detector.JabPose(), wantMove: classify.Jab, wantForm: classify.Guard, wantDeg: 49},
		{name: "cross", kp: detector.CrossPose(), wantMove: classify.Cross, wantForm: classify.FullExtension, wantDeg: 154},
		{name: "middle punch", kp: detector.MiddlePunchPose(), wantMove: classify.Unknown, wantForm: classify.MiddlePunch, wantDeg: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Analyze(tt.kp)

			if !res.Person {
				t.Fatal("expected Person to be true")
			}
			if res.Move != tt.wantMove {
				t.Errorf("Move = %q, want %q", res.Move, tt.wantMove)
			}
			if !res.FormOK {
				t.Fatal("expected FormOK to be true")
			}
			if res.Form != tt.wantForm {
				t.Errorf("Form = %q, want %q", res.Form, tt.wantForm)
			}
			// Fixture angles are whole degrees; rounding noise may land
			// either side, so allow the truncated value to be one lower.
			if res.RightElbowDeg != tt.wantDeg && res.RightElbowDeg != tt.wantDeg+1 {
				t.Errorf("RightElbowDeg = %d, want %d or %d", res.RightElbowDeg, tt.wantDeg, tt.wantDeg+1)
			}
			if math.IsNaN(res.LeftKnee) || math.IsNaN(res.RightKnee) {
				t.Error("expected knee angles for a full-body pose")
			}
		})
	}
}

func TestAnalyze_NoPerson(t *testing.T) {
	res := Analyze(nil)

	if res.Person {
		t.Error("expected Person to be false")
	}
	if res.Move != classify.NoPerson {
		t.Errorf("Move = %q, want %q", res.Move, classify.NoPerson)
	}
	if res.FormOK || res.Form != "" {
		t.Errorf("expected no form for an absent pose, got %q", res.Form)
	}
	if !math.IsNaN(res.LeftElbow) || !math.IsNaN(res.RightElbow) {
		t.Error("expected NaN elbow angles for an absent pose")
	}
	if res.Posture.Person || len(res.Posture.Cues) != 0 {
		t.Errorf("Posture = %+v, want an empty report", res.Posture)
	}
}

func TestAnalyze_Posture(t *testing.T) {
	// The guard fixture drops the left hand to elbow height and stands with
	// the feet under the shoulders.
	res := Analyze(detector.GuardPose())

	want := []string{"Raise your LEFT guard", "Widen your stance slightly"}
	if !res.Posture.Person {
		t.Fatal("expected Posture.Person to be true")
	}
	if len(res.Posture.Cues) != len(want) {
		t.Fatalf("Posture.Cues = %q, want %q", res.Posture.Cues, want)
	}
	for i := range want {
		if res.Posture.Cues[i] != want[i] {
			t.Errorf("Posture.Cues[%d] = %q, want %q", i, res.Posture.Cues[i], want[i])
		}
	}
}

func TestAnalyze_DegenerateRightArm(t *testing.T) {
	kp := detector.JabPose()
	kp[pose.RightWrist] = kp[pose.RightElbow]

	res := Analyze(kp)

	if res.Move != classify.Jab {
		t.Errorf("Move = %q, want %q", res.Move, classify.Jab)
	}
	if res.FormOK {
		t.Errorf("expected FormOK false for a degenerate right arm, got form %q", res.Form)
	}
	if !math.IsNaN(res.RightElbow) {
		t.Errorf("RightElbow = %f, want NaN", res.RightElbow)
	}
}

func TestAnalyze_Truncates(t *testing.T) {
	// 129.9 must stay a middle punch: truncation, not rounding.
	kp := detector.StancePose(90, 129.9)

	res := Analyze(kp)

	if res.RightElbowDeg != 129 {
		t.Errorf("RightElbowDeg = %d, want 129", res.RightElbowDeg)
	}
	if res.Form != classify.MiddlePunch {
		t.Errorf("Form = %q, want %q", res.Form, classify.MiddlePunch)
	}
}

func TestAnalyze_Stateless(t *testing.T) {
	first := Analyze(detector.CrossPose())
	Analyze(detector.JabPose())
	Analyze(nil)
	again := Analyze(detector.CrossPose())

	if first.Move != again.Move || first.Form != again.Form || first.RightElbowDeg != again.RightElbowDeg {
		t.Errorf("same pose gave different results: %+v vs %+v", first, again)
	}
}
