package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/net/http/bind"
	"bankingops/internal/services/dispatch/domain"
	records "bankingops/internal/services/records/domain"

	"github.com/spf13/cobra"
)

// InvokeOptions holds flags for the invoke command
type InvokeOptions struct {
	*RootOptions
	Inputs        string
	TargetFile    string
	PreImageFile  string
	Message       string
	Stage         int
	Depth         int
	CorrelationID string
}

// NewInvokeCommand creates the invoke command
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <operation>",
		Short: "Invoke an operation against the configured stores",
		Long: `Invoke an operation against the configured stores.

Operations: ` + strings.Join(domain.Names(), ", ") + `

Examples:
  bankingopsctl invoke CheckCreditLimit --inputs '{"CustomerId":"6f1c2a9e-8d7b-4b35-9a51-0c7f3e2d1a44","RequestedAmount":1500}'
  bankingopsctl invoke ValidateTransaction --target txn.json --message Create --stage 20`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invokeOperation(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Inputs, "inputs", "{}", "operation inputs as a JSON object")
	cmd.Flags().StringVar(&opts.TargetFile, "target", "", "JSON file with the target record {entity, id, fields}")
	cmd.Flags().StringVar(&opts.PreImageFile, "pre-image", "", "JSON file with the pre-image record {entity, id, fields}")
	cmd.Flags().StringVar(&opts.Message, "message", "", "triggering message, e.g. Create or Update")
	cmd.Flags().IntVar(&opts.Stage, "stage", 0, "pipeline stage of the trigger")
	cmd.Flags().IntVar(&opts.Depth, "depth", 1, "re-entrancy depth of the trigger")
	cmd.Flags().StringVar(&opts.CorrelationID, "correlation-id", "", "correlation id; generated when empty")

	return cmd
}

func invokeOperation(cmd *cobra.Command, opts *InvokeOptions, op string) error {
	inputs, err := decodeObject([]byte(opts.Inputs))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --inputs JSON", err)
	}
	target, err := readRecord(opts.TargetFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --target", err)
	}
	prior, err := readRecord(opts.PreImageFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --pre-image", err)
	}

	out := formatter(cmd, opts.RootOptions)
	return withRuntime(cmd.Context(), opts.RootOptions, func(rt *Runtime) error {
		res, err := rt.Dispatcher.Dispatch(cmd.Context(), domain.Invocation{
			Operation:     op,
			Message:       opts.Message,
			Stage:         opts.Stage,
			Depth:         opts.Depth,
			CorrelationID: opts.CorrelationID,
			Inputs:        inputs,
			Target:        target,
			PreImage:      prior,
		})
		out.VerboseLog("correlation_id=%s", res.CorrelationID)
		if err != nil {
			w := perr.WireFrom(err)
			_ = out.Error(string(perr.CategoryOf(err)), w.Message, w.Field)
			return WrapExitError(ExitFailure, op+" failed", err)
		}
		data := map[string]any{"correlation_id": res.CorrelationID}
		for k, v := range res.Outputs {
			data[k] = v
		}
		return out.Success(data)
	})
}

func decodeObject(b []byte) (map[string]any, error) {
	return bind.Decode[map[string]any](bytes.NewReader(b), bind.Options{})
}

type recordFile struct {
	Entity string         `json:"entity" validate:"required,max=64"`
	ID     string         `json:"id"     validate:"required"`
	Fields map[string]any `json:"fields"`
}

// readRecord loads a record image; an empty path is no record
func readRecord(path string) (*records.Record, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rf, err := bind.Decode[recordFile](f, bind.Options{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rf.Fields == nil {
		rf.Fields = map[string]any{}
	}
	return &records.Record{Entity: rf.Entity, ID: rf.ID, Fields: rf.Fields}, nil
}
