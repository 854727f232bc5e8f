package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/runner/record"
	"tableflip.dev/kiosk/pkg/store"
)

func addOrder(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "inspect the kiosk's local order for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "print the recorded order and whether it applies today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := record.Show{Store: p}
			return output.HandleError(s.Do())
		},
	}

	erase := &cobra.Command{
		Use:   "clear",
		Short: "forget the recorded order; a running kiosk falls back to server order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := record.Clear{Store: p}
			return output.HandleError(s.Do())
		},
	}

	cmd.AddCommand(show, erase)
	topLevel.AddCommand(cmd)
}
