// Package config loads optional YAML configuration that overrides the built-in scan and report defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/codeoffolder/internal/types"
	"github.com/temirov/codeoffolder/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the scan and report configuration.
type ApplicationConfiguration struct {
	Scan   ScanConfiguration   `mapstructure:"scan"`
	Report ReportConfiguration `mapstructure:"report"`
}

// ScanConfiguration selects the embedded suffixes and the pruned names.
type ScanConfiguration struct {
	Extensions        []string `mapstructure:"extensions"`
	IgnoreDirectories []string `mapstructure:"ignore_directories"`
	SkipFiles         []string `mapstructure:"skip_files"`
}

// ReportConfiguration defines where the report goes and what accompanies it.
type ReportConfiguration struct {
	Output    string             `mapstructure:"output"`
	Summary   *bool              `mapstructure:"summary"`
	Clipboard *bool              `mapstructure:"clipboard"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// Local values override global ones; missing files leave the defaults untouched.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statErr)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath, nil
	}
	if workingDirectory == "" {
		absolute, err := filepath.Abs(explicitPath)
		if err != nil {
			return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
		}
		return absolute, nil
	}
	return filepath.Join(workingDirectory, explicitPath), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if !isKnownConfigExtension(filepath.Ext(path)) {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

func isKnownConfigExtension(extension string) bool {
	trimmed := strings.TrimPrefix(strings.ToLower(extension), ".")
	return utils.ContainsString(viper.SupportedExts, trimmed)
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Scan = result.Scan.merge(override.Scan)
	result.Report = result.Report.merge(override.Report)
	return result
}

func (config ScanConfiguration) merge(override ScanConfiguration) ScanConfiguration {
	result := config
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string{}, utils.DeduplicatePatterns(override.Extensions)...)
	}
	if len(override.IgnoreDirectories) > 0 {
		result.IgnoreDirectories = append([]string{}, utils.DeduplicatePatterns(override.IgnoreDirectories)...)
	}
	if len(override.SkipFiles) > 0 {
		result.SkipFiles = append([]string{}, utils.DeduplicatePatterns(override.SkipFiles)...)
	}
	return result
}

func (config ReportConfiguration) merge(override ReportConfiguration) ReportConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// ScanSettings resolves the scan configuration against the built-in defaults.
func (config ScanConfiguration) ScanSettings() types.ScanSettings {
	settings := types.ScanSettings{
		Extensions:         utils.DefaultExtensions(),
		IgnoredDirectories: utils.DefaultIgnoredDirectories(),
		SkippedFiles:       utils.DefaultSkippedFiles(),
	}
	if len(config.Extensions) > 0 {
		settings.Extensions = append([]string{}, config.Extensions...)
	}
	if len(config.IgnoreDirectories) > 0 {
		settings.IgnoredDirectories = append([]string{}, config.IgnoreDirectories...)
	}
	if len(config.SkipFiles) > 0 {
		settings.SkippedFiles = append([]string{}, config.SkipFiles...)
	}
	return settings
}

// OutputFileName returns the configured report name or the default one.
func (config ReportConfiguration) OutputFileName() string {
	if strings.TrimSpace(config.Output) == "" {
		return utils.DefaultOutputFileName
	}
	return config.Output
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
