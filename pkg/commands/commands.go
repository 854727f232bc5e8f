package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/kiosk/pkg/commands/options"
	"tableflip.dev/kiosk/pkg/store"
	"tableflip.dev/kiosk/pkg/taskapi"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "kiosk",
		Short: base.Wrap80("A touchscreen board for today's tasks, with tools to manage them from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRun(topLevel)
	addAdmin(topLevel)
	addTasks(topLevel)
	addOrder(topLevel)
	addNight(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func loadClient() (*store.Config, *taskapi.Client, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	c, err := taskapi.NewClient(cfg.APIURL, cfg.APITimeout)
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}
