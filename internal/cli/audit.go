package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAuditCommand creates the audit command group
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Read the decision log",
	}
	var limit int
	recent := &cobra.Command{
		Use:           "recent",
		Short:         "List the newest dispatched decisions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), rootOpts, func(rt *Runtime) error {
				if rt.Decisions == nil {
					return NewExitError(ExitCommandError, "decision log is disabled (set CH_ENABLED=true)")
				}
				ds, err := rt.Decisions.Recent(cmd.Context(), limit)
				if err != nil {
					return WrapExitError(ExitFailure, "read decision log", err)
				}
				out := formatter(cmd, rootOpts)
				if rootOpts.Format == "json" {
					return out.Success(ds)
				}
				for _, d := range ds {
					fmt.Fprintf(out.Writer, "%s %-24s %-8s %-16s %5dms %s %s\n",
						d.At.Format("2006-01-02T15:04:05.000Z"), d.Operation, d.Outcome,
						d.Category, d.ElapsedMS, d.CorrelationID, d.RecordID)
				}
				return nil
			})
		},
	}
	recent.Flags().IntVar(&limit, "limit", 20, "rows to show (max 1000)")
	cmd.AddCommand(recent)
	return cmd
}
