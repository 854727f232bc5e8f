package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/commands/options"
	"tableflip.dev/kiosk/pkg/store"
	"tableflip.dev/kiosk/pkg/tui/kiosk"
)

func addRun(topLevel *cobra.Command) {
	lo := &options.LogOptions{}

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"ui"},
		Short:   "show the touchscreen task board",
		Example: `
kiosk run
kiosk run --log-path=/var/log/kiosk.log --log-level=debug
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, api, err := loadClient()
			if err != nil {
				return err
			}
			logger, closeLog, err := lo.Logger(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			p, err := store.Load(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger.Info("kiosk starting", "api", cfg.APIURL, "store", p.BasePath())
			return kiosk.Run(ctx, kiosk.Options{
				Config: cfg,
				API:    api,
				Hooks:  api,
				Store:  p,
				Logger: logger,
			})
		},
	}

	options.AddLogArgs(cmd, lo)
	topLevel.AddCommand(cmd)
}
