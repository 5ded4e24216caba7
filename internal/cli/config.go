package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	ngerrors "github.com/oscarlic/angular-cli/internal/errors"
	"github.com/oscarlic/angular-cli/internal/jsonutil"
	"github.com/oscarlic/angular-cli/internal/settings"
	"github.com/oscarlic/angular-cli/internal/workspace"
)

var configGlobal bool

var configCmd = &cobra.Command{
	Use:   "config [json-path] [value]",
	Short: "Read and write configuration values",
	Long: `Read and write values in the workspace configuration.

Without arguments the whole document is printed. With a json-path the
value at that path is printed. With a json-path and a value, the value
is written back to the configuration file. Values are parsed as JSON
literals where possible and treated as plain strings otherwise.`,
	Example: `  # Print the whole workspace configuration
  ng config

  # Read a value
  ng config cli.packageManager

  # Write a value into the global configuration
  ng config --global cli.packageManager yarn`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	configCmd.PersistentFlags().BoolVarP(&configGlobal, "global", "g", false, "Operate on the user-level configuration")
	configCmd.AddCommand(configMigrateCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func configScope() workspace.Scope {
	if configGlobal {
		return workspace.Global
	}
	return workspace.Local
}

func runConfig(cmd *cobra.Command, args []string) error {
	store := workspace.NewStore()
	raw, err := store.WorkspaceRaw(configScope())
	if err != nil {
		return ngerrors.Wrap(err, ngerrors.Configuration)
	}
	if raw == nil {
		return ngerrors.NewConfigError("no workspace configuration file found",
			"Run the command inside a workspace, or pass --global to use the user-level configuration.")
	}

	switch len(args) {
	case 0:
		fmt.Fprint(cmd.OutOrStdout(), string(pretty.Pretty(raw.Bytes())))
		return nil
	case 1:
		value := raw.Get(args[0])
		if !value.Exists() {
			return ngerrors.NewArgumentError(fmt.Sprintf("value at path %q is undefined", args[0]))
		}
		out := value.String()
		if value.IsObject() || value.IsArray() {
			out = string(pretty.Pretty([]byte(value.Raw)))
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(out))
		return nil
	default:
		return setConfigValue(raw, args[0], args[1])
	}
}

func setConfigValue(raw *workspace.RawConfig, path, literal string) error {
	value := parseValue(literal)
	if path == "cli.packageManager" || strings.HasSuffix(path, ".cli.packageManager") {
		name, ok := value.(string)
		if !ok {
			return ngerrors.NewArgumentError("cli.packageManager must be a string")
		}
		if err := settings.ValidatePackageManagerName(name); err != nil {
			return ngerrors.Wrap(err, ngerrors.Argument)
		}
	}
	if err := raw.Set(path, value); err != nil {
		return ngerrors.WrapWithMessage(err, ngerrors.Argument, fmt.Sprintf("cannot set value at path %q", path))
	}
	if err := raw.Save(); err != nil {
		return ngerrors.WrapWithMessage(err, ngerrors.Runtime, fmt.Sprintf("cannot write %s", raw.Path))
	}
	return nil
}

// parseValue interprets a command-line value as a JSON literal, falling
// back to a plain string.
func parseValue(literal string) any {
	v, err := jsonutil.Parse([]byte(literal))
	if err != nil {
		return literal
	}
	return v
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the legacy global configuration",
	Long: `Convert the deprecated ~/.angular-cli.json file into the current
.angular-config.json format. The legacy file is left in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		migrated, err := workspace.MigrateLegacyGlobalConfig()
		if err != nil {
			return ngerrors.Wrap(err, ngerrors.Configuration)
		}
		if migrated {
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated legacy configuration to .angular-config.json")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No legacy configuration to migrate")
		}
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration against the workspace schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := workspace.NewStore()
		doc, err := store.Workspace(configScope())
		if err != nil {
			return ngerrors.Wrap(err, ngerrors.Configuration)
		}
		if doc == nil {
			return ngerrors.NewConfigError("no workspace configuration file found",
				"Run the command inside a workspace, or pass --global to use the user-level configuration.")
		}
		if err := workspace.ValidateWorkspace(doc); err != nil {
			var verr *workspace.ValidationError
			if errors.As(err, &verr) {
				steps := make([]string, 0, len(verr.Violations))
				for _, v := range verr.Violations {
					steps = append(steps, fmt.Sprintf("%s: %s", v.InstancePath, v.Message))
				}
				return ngerrors.NewValidationError(fmt.Sprintf("%s does not match the workspace schema", doc.Path), steps...)
			}
			return ngerrors.Wrap(err, ngerrors.Configuration)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", doc.Path)
		return nil
	},
}
