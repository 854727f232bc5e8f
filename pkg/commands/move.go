package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/commands/options"
	"tableflip.dev/kiosk/pkg/runner/move"
	"tableflip.dev/kiosk/pkg/runner/reorder"
	"tableflip.dev/kiosk/pkg/store"
	"tableflip.dev/kiosk/pkg/task"
)

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	position := 0

	cmd := &cobra.Command{
		Use:   "move <task id> <position>",
		Short: "move a task to a 1-based position in today's list",
		Example: `
kiosk tasks move 12 1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a task id and a position")
			}
			if err := options.IDArg(io)(cmd, args); err != nil {
				return err
			}
			var err error
			if position, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("position %q is not a number", args[1])
			}
			return nil
		},
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			s := move.Move{ID: io.ID, Position: position, API: api}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addReorder(topLevel *cobra.Command) {
	var ids []task.ID
	local := true

	cmd := &cobra.Command{
		Use:   "reorder <task id>...",
		Short: "set the full order of today's tasks",
		Example: `
kiosk tasks reorder 3 1 2
kiosk tasks reorder 3,1,2 --local=false
`,
		Args: func(cmd *cobra.Command, args []string) error {
			ids = options.ParseIDs(args)
			if len(ids) == 0 {
				return errors.New("requires at least one task id")
			}
			return nil
		},
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, api, err := loadClient()
			if err != nil {
				return output.HandleError(err)
			}
			s := reorder.Reorder{IDs: ids, API: api}
			if local {
				p, err := store.Load(cfg)
				if err != nil {
					return output.HandleError(err)
				}
				s.Order = p
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&local, "local", true, "Also record the order as today's local order.")
	topLevel.AddCommand(cmd)
}
