package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/commands/options"
	"tableflip.dev/kiosk/pkg/runner/get"
	"tableflip.dev/kiosk/pkg/runner/remove"
	"tableflip.dev/kiosk/pkg/store"
)

func addTasks(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   base.Wrap80("Manage the tasks behind the board."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addList(cmd)
	addAdd(cmd)
	addEdit(cmd)
	addRemove(cmd)
	addComplete(cmd)
	addMove(cmd)
	addReorder(cmd)

	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	all := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "list today's tasks in board order",
		Example: `
kiosk tasks list
kiosk tasks list --all --show-id
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				API:    api,
				All:    all,
				ShowID: io.ShowID,
				Order:  p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every task, not only today's.")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <task id>",
		Aliases: []string{"delete", "remove"},
		Short:   "delete a task",
		Example: `
kiosk tasks rm 12
`,
		Args:              options.IDArg(io),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			s := remove.Remove{ID: io.ID, API: api}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
