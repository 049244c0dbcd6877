// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codeoffolder/internal/commands"
	"github.com/temirov/codeoffolder/internal/config"
	"github.com/temirov/codeoffolder/internal/services/clipboard"
	"github.com/temirov/codeoffolder/internal/tokenizer"
	"github.com/temirov/codeoffolder/internal/types"
	"github.com/temirov/codeoffolder/internal/utils"
)

const (
	extensionFlagName       = "ext"
	ignoreDirectoryFlagName = "ignore-dir"
	outputFlagName          = "output"
	outputFlagShorthand     = "o"
	configFlagName          = "config"
	summaryFlagName         = "summary"
	tokensFlagName          = "tokens"
	modelFlagName           = "model"
	clipboardFlagName       = "clipboard"
	versionTemplate         = "codeoffolder version: {{.Version}}\n"
	rootUse                 = "codeoffolder [path]"
	rootShortDescription    = "write a folder's structure and source files into one report"
	rootLongDescription     = `codeoffolder walks a folder, lists its directories and files as an indented tree
and appends the content of every source file into a single report (CodeOfFolder.txt).
Without a path argument it asks whether to scan the current folder or which folder to scan.
A folder named like a subcommand must be given with a path prefix, e.g. ./init.`
	rootUsageExample = `  # Ask interactively which folder to scan
  codeoffolder

  # Scan a project and embed only Go and Markdown files
  codeoffolder --ext .go --ext .md ./project

  # Skip a vendor directory and print a token summary
  codeoffolder --ignore-dir vendor --tokens .`

	extensionFlagDescription       = "file name suffix to embed (repeatable, replaces the defaults)"
	ignoreDirectoryFlagDescription = "directory name to prune at any depth (repeatable, added to the defaults)"
	outputFlagDescription          = "report file name, created in the working directory"
	configFlagDescription          = "configuration file (defaults to " + utils.ConfigFileName + " in the working directory)"
	summaryFlagDescription         = "print a summary of the embedded files"
	tokensFlagDescription          = "include token counts in the summary"
	modelFlagDescription           = "tokenizer model to use for token counting"
	clipboardFlagDescription       = "copy the report to the clipboard"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	scanErrorFormat             = "scanning %s: %w"
	warningClipboardMessage     = "unable to copy report to clipboard"
)

// Dependencies carries the collaborators of the root command.
type Dependencies struct {
	Logger          *zap.Logger
	Copier          clipboard.Copier
	NewTokenCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	if dependencies.NewTokenCounter == nil {
		dependencies.NewTokenCounter = tokenizer.NewCounter
	}
	return dependencies
}

// Execute runs the codeoffolder application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	return rootCommand.Execute()
}

// runOptions stores the values of the root command flags.
type runOptions struct {
	extensions         []string
	ignoredDirectories []string
	outputFileName     string
	configPath         string
	summaryEnabled     bool
	tokensEnabled      bool
	tokenModel         string
	clipboardEnabled   bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      utils.GetApplicationVersion(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runScan(command, arguments, options, dependencies)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)

	flags := rootCommand.Flags()
	flags.StringArrayVar(&options.extensions, extensionFlagName, nil, extensionFlagDescription)
	flags.StringArrayVar(&options.ignoredDirectories, ignoreDirectoryFlagName, nil, ignoreDirectoryFlagDescription)
	flags.StringVarP(&options.outputFileName, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flags.BoolVar(&options.summaryEnabled, summaryFlagName, false, summaryFlagDescription)
	flags.BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flags.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flags.BoolVar(&options.clipboardEnabled, clipboardFlagName, false, clipboardFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runSettings is the merged result of configuration files and flags.
type runSettings struct {
	scan             types.ScanSettings
	outputFileName   string
	summaryEnabled   bool
	tokensEnabled    bool
	tokenModel       string
	clipboardEnabled bool
}

// resolveRunSettings overlays explicitly set flags on the loaded configuration.
func resolveRunSettings(command *cobra.Command, options runOptions, configuration config.ApplicationConfiguration) runSettings {
	flags := command.Flags()
	settings := runSettings{
		scan:             configuration.Scan.ScanSettings(),
		outputFileName:   configuration.Report.OutputFileName(),
		summaryEnabled:   boolValue(configuration.Report.Summary),
		tokensEnabled:    boolValue(configuration.Report.Tokens.Enabled),
		tokenModel:       configuration.Report.Tokens.Model,
		clipboardEnabled: boolValue(configuration.Report.Clipboard),
	}
	if flags.Changed(extensionFlagName) {
		settings.scan.Extensions = utils.DeduplicatePatterns(options.extensions)
	}
	if flags.Changed(ignoreDirectoryFlagName) {
		settings.scan.IgnoredDirectories = utils.DeduplicatePatterns(append(settings.scan.IgnoredDirectories, options.ignoredDirectories...))
	}
	if flags.Changed(outputFlagName) {
		settings.outputFileName = options.outputFileName
	}
	if flags.Changed(summaryFlagName) {
		settings.summaryEnabled = options.summaryEnabled
	}
	if flags.Changed(tokensFlagName) {
		settings.tokensEnabled = options.tokensEnabled
	}
	if flags.Changed(modelFlagName) || settings.tokenModel == "" {
		settings.tokenModel = options.tokenModel
	}
	if flags.Changed(clipboardFlagName) {
		settings.clipboardEnabled = options.clipboardEnabled
	}
	if settings.tokensEnabled {
		settings.summaryEnabled = true
	}
	return settings
}

// runScan resolves the root folder, then writes the report for it.
func runScan(command *cobra.Command, arguments []string, options runOptions, dependencies Dependencies) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	settings := resolveRunSettings(command, options, configuration)

	stdout := command.OutOrStdout()
	messages := newConsole(stdout)

	var rootFolder string
	if len(arguments) > 0 {
		rootFolder = arguments[0]
	} else {
		promptedFolder, promptError := promptForRootFolder(command.InOrStdin(), stdout, workingDirectory)
		if promptError != nil {
			return promptError
		}
		rootFolder = promptedFolder
	}

	absoluteRoot, isValid := validateRootFolder(rootFolder)
	if !isValid {
		messages.failure(invalidFolderMessage)
		return nil
	}

	reportOptions := commands.ReportOptions{Logger: dependencies.Logger}
	if settings.tokensEnabled {
		counter, resolvedModel, counterError := dependencies.NewTokenCounter(tokenizer.Config{Model: settings.tokenModel})
		if counterError != nil {
			return counterError
		}
		reportOptions.TokenCounter = counter
		reportOptions.TokenModel = resolvedModel
	}

	scanResult, scanError := commands.Scan(absoluteRoot, settings.scan)
	if scanError != nil {
		return fmt.Errorf(scanErrorFormat, absoluteRoot, scanError)
	}
	summary, reportError := commands.WriteReport(scanResult.StructureLines, scanResult.CodeFilePaths, settings.outputFileName, reportOptions)
	if reportError != nil {
		return reportError
	}

	messages.success(fmt.Sprintf(successMessageFormat, settings.outputFileName))
	if settings.summaryEnabled {
		fmt.Fprintln(stdout, commands.FormatSummaryLine(summary))
	}
	if settings.clipboardEnabled {
		if copyError := clipboard.CopyFile(dependencies.Copier, settings.outputFileName); copyError != nil {
			dependencies.Logger.Warn(warningClipboardMessage, zap.Error(copyError))
		}
	}
	return nil
}

// validateRootFolder returns the clean absolute form of path when it names an existing directory.
func validateRootFolder(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	info, statError := os.Stat(path)
	if statError != nil || !info.IsDir() {
		return "", false
	}
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return "", false
	}
	return filepath.Clean(absolutePath), true
}

func boolValue(value *bool) bool {
	return value != nil && *value
}
