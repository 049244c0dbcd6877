package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/codeoffolder/internal/config"
)

const (
	initUse                   = "init"
	initShortDescription      = "write a default configuration file"
	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write the configuration into the home directory instead of the working directory"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initCompletedFormat       = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initCompletedFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&globalTarget, initGlobalFlagName, false, initGlobalFlagDescription)
	initCommand.Flags().BoolVar(&force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
