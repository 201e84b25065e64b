package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewSettingsCommand creates the settings command group
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Resolve and override policy settings",
	}
	cmd.AddCommand(newSettingsGetCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))
	return cmd
}

func newSettingsGetCommand(opts *RootOptions) *cobra.Command {
	var static string
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Resolve a setting and report which layer answered",
		Example: `  bankingopsctl settings get pp_MinCreditScore --default 650
  bankingopsctl settings get pp_StaticFx_USD_EUR --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(rt *Runtime) error {
				s := rt.Settings.Setting(cmd.Context(), args[0], static)
				return formatter(cmd, opts).Success(map[string]any{
					"name":   s.Name,
					"value":  s.Value,
					"source": s.Source.String(),
				})
			})
		},
	}
	cmd.Flags().StringVar(&static, "default", "", "static default used when no override or secret is set")
	return cmd
}

func newSettingsSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set <name> <value>",
		Short:         "Write a platform-hosted override",
		Example:       `  bankingopsctl settings set pp_AllowedCurrencies "CAD;JPY"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(rt *Runtime) error {
				if rt.Overrides == nil {
					return NewExitError(ExitCommandError, "override store is not configured")
				}
				name := strings.TrimSpace(args[0])
				if err := rt.Overrides.Upsert(cmd.Context(), name, args[1]); err != nil {
					return WrapExitError(ExitFailure, "write override", err)
				}
				return formatter(cmd, opts).Success(map[string]any{"name": name, "value": args[1]})
			})
		},
	}
}
