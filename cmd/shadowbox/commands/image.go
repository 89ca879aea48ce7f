package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/ayusman/shadowbox/internal/app"
)

func imageCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Classify the pose in a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img := gocv.IMRead(args[0], gocv.IMReadColor)
			if img.Empty() {
				img.Close()
				return fmt.Errorf("could not read image %s", args[0])
			}
			defer img.Close()

			a := app.New(app.Config{}, nil, openDetector())
			defer a.Close()

			res, err := a.ProcessFrame(&img)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)

			if out != "" {
				if ok := gocv.IMWrite(out, img); !ok {
					return fmt.Errorf("could not write %s", out)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Annotated image written to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the annotated image to this path")
	return cmd
}
