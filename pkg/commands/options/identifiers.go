package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/task"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     task.ID
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task.")
}

// IDArg takes the task id from the first argument.
func IDArg(o *IDOptions) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
			return errors.New("requires a task id")
		}
		o.ID = task.ID(strings.TrimSpace(args[0]))
		return nil
	}
}

// ParseIDs converts arguments to task ids, accepting comma separated
// lists too.
func ParseIDs(args []string) []task.ID {
	var ids []task.ID
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, task.ID(part))
			}
		}
	}
	return ids
}
