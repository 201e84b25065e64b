package cli

import "github.com/spf13/cobra"

// NewSchemaCommand creates the schema command group
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:           "apply",
		Short:         "Create the Postgres tables and, when enabled, the ClickHouse decision log",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), rootOpts, func(rt *Runtime) error {
				if err := rt.ApplySchema(cmd.Context()); err != nil {
					return WrapExitError(ExitFailure, "apply schema", err)
				}
				return formatter(cmd, rootOpts).Success("schema applied")
			})
		},
	})
	return cmd
}
