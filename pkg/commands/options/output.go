package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/kiosk/pkg/taskapi"
)

// OutputOptions
type OutputOptions struct {
	JSON bool

	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Print errors as JSON for scripts driving the kiosk.")
}

// errorReport is the --json error body. Status carries the API's HTTP
// status when the failure came from the server.
type errorReport struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// HandleError reports err on Out as JSON and returns nil when JSON output
// is on; otherwise err is returned for cobra to print.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}

	report := errorReport{Error: err.Error()}
	var se *taskapi.StatusError
	if errors.As(err, &se) {
		report.Status = se.Code
	}
	b, merr := json.Marshal(report)
	if merr != nil {
		return err
	}

	out := o.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, string(b))
	return nil
}
