package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayusman/shadowbox/internal/config"
)

var (
	configPath string
	cfg        config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "shadowbox",
		Short:        "Pose-based jab/cross and guard form trainer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $SHADOWBOX_CONFIG or ~/.shadowbox/config.yaml)")

	root.AddCommand(runCmd(), imageCmd(), angleCmd())
	return root
}
