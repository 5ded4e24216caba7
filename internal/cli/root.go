// Package cli implements the ng command surface.
package cli

import (
	"github.com/spf13/cobra"

	ngerrors "github.com/oscarlic/angular-cli/internal/errors"
	"github.com/oscarlic/angular-cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ng",
	Short: "Workspace configuration for the Angular CLI",
	Long: `ng resolves workspace configuration for command implementations.

Settings cascade across three scopes (highest to lowest priority):
  1. Project configuration (the project owning the working directory)
  2. Workspace configuration (angular.json or .angular.json, found by
     walking up from the working directory)
  3. Global configuration (~/.config/angular/.angular-config.json or
     ~/.angular-config.json)`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if cliErr := ngerrors.AsCLIError(err); cliErr != nil {
		ngerrors.PrintError(cliErr)
	} else {
		ngerrors.PrintError(ngerrors.Wrap(err, ngerrors.Runtime))
	}
	return err
}
