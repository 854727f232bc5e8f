package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/commands/options"
	"tableflip.dev/kiosk/pkg/runner/add"
	"tableflip.dev/kiosk/pkg/runner/edit"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "add a task",
		Example: `
kiosk tasks add pay rent --start=2025-04-01
kiosk tasks add water plants --repeat=days --every=3
kiosk tasks add gym --repeat=weekdays --days=mon,wed,fri
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			to.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			t, err := to.Task()
			if err != nil {
				return output.HandleError(err)
			}
			_, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{Task: t, API: api}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskArgs(cmd, to)
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "edit <task id> [new title]",
		Short: "change a task",
		Example: `
kiosk tasks edit 12 pay the rent
kiosk tasks edit 12 --repeat=none
kiosk tasks edit 7 --every=2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := options.IDArg(io)(cmd, args); err != nil {
				return err
			}
			to.Title = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			s := edit.Edit{ID: io.ID, Patch: to.Patch(cmd), API: api}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskArgs(cmd, to)
	topLevel.AddCommand(cmd)
}
