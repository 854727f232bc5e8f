package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/power"
	"tableflip.dev/kiosk/pkg/runner/night"
	"tableflip.dev/kiosk/pkg/store"
)

func addNight(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "night",
		Short: "show the configured blackout hours",
		Example: `
kiosk night
KIOSK_POWER_NIGHT_START=22 kiosk night
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			s := night.Night{Window: power.NightWindow{Start: cfg.NightStart, End: cfg.NightEnd}}
			return output.HandleError(s.Do())
		},
	}

	topLevel.AddCommand(cmd)
}
