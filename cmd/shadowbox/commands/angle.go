package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ayusman/shadowbox/internal/classify"
	"github.com/ayusman/shadowbox/internal/geometry"
	"github.com/ayusman/shadowbox/internal/pose"
)

func angleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "angle <shoulder-x> <shoulder-y> <elbow-x> <elbow-y> <wrist-x> <wrist-y>",
		Short: "Compute the elbow angle for three points and classify it",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [6]float64
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				v[i] = f
			}

			shoulder := pose.Point2D{X: v[0], Y: v[1]}
			elbow := pose.Point2D{X: v[2], Y: v[3]}
			wrist := pose.Point2D{X: v[4], Y: v[5]}

			angle := geometry.Angle(shoulder, elbow, wrist)
			w := cmd.OutOrStdout()

			deg, ok := geometry.TruncDegrees(angle)
			if !ok {
				fmt.Fprintln(w, "Angle: -- (coincident points)")
				fmt.Fprintf(w, "Move: %s\n", classify.MoveFromAngle(angle))
				fmt.Fprintln(w, "Form: --")
				return nil
			}

			fmt.Fprintf(w, "Angle: %.3f deg\n", angle)
			fmt.Fprintf(w, "Move: %s\n", classify.MoveFromAngle(angle))
			fmt.Fprintf(w, "Form: %s\n", classify.Form(deg))
			return nil
		},
	}
}
