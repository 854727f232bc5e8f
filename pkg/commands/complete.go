package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/commands/options"
	"tableflip.dev/kiosk/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"complete", "completed"},
		Short:   "mark a task done for today",
		Example: `
kiosk tasks done 12
`,
		Args:              options.IDArg(io),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			s := complete.Complete{ID: io.ID, API: api}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
