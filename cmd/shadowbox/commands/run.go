package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ayusman/shadowbox/internal/app"
	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/tray"
)

func runCmd() *cobra.Command {
	var (
		source   string
		headless bool
		withTray bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Capture video and classify punches live",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("source") {
				cfg.Camera.Source = source
			}
			if cmd.Flags().Changed("headless") {
				cfg.Display.Headless = headless
			}
			if cmd.Flags().Changed("tray") {
				cfg.Display.Tray = withTray
			}

			a := app.New(app.Config{
				QuitKey:      cfg.Display.QuitKey[0],
				ComboTimeout: cfg.ComboTimeout(),
			}, capture.NewCamera(cfg.CaptureConfig()), openDetector())
			defer func() {
				if err := a.Close(); err != nil {
					log.Printf("Error closing detector: %v", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var err error
			if cfg.Display.Tray {
				err = runWithTray(ctx, stop, a)
			} else {
				err = runWithWindow(ctx, a)
			}

			printStats(cmd.OutOrStdout(), a.Stats())
			return err
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "camera index or video file (default from config)")
	cmd.Flags().BoolVar(&headless, "headless", false, "do not open a preview window")
	cmd.Flags().BoolVar(&withTray, "tray", false, "control the session from the system tray (implies headless)")
	return cmd
}

func runWithWindow(ctx context.Context, a *app.App) error {
	if cfg.Display.Headless {
		return a.Run(ctx, nil)
	}

	display := app.NewWindowDisplay(cfg.Display.WindowTitle)
	defer display.Close()

	return a.Run(ctx, display)
}

// runWithTray runs the pipeline on a goroutine because the tray owns the
// main thread. The loop is headless: OpenCV windows need the main thread too.
func runWithTray(ctx context.Context, stop context.CancelFunc, a *app.App) error {
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnReset(a.ResetRound)
	t.OnQuit(stop)
	a.OnResult(t.Update)

	done := make(chan error, 1)
	go func() {
		err := a.Run(ctx, nil)
		t.Quit()
		done <- err
	}()

	t.Run()
	stop()

	if err := <-done; err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}
