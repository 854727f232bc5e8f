package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/tui/admin"
)

func addAdmin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "browse every task, complete or delete them",
		Example: `
kiosk admin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, api, err := loadClient()
			if err != nil {
				return err
			}
			return admin.Run(context.Background(), api)
		},
	}

	topLevel.AddCommand(cmd)
}
