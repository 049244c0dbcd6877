package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Report layout constants shared by the traverser and the reporter.
const (
	// DefaultOutputFileName is the report written into the working directory.
	DefaultOutputFileName = "CodeOfFolder.txt"
	// BranchMarker precedes every nested directory and file name.
	BranchMarker = "├── "
	// ContinuationMarker repeats once per ancestor level above a branch.
	ContinuationMarker = "│   "
	// StructureHeader opens the structure section of the report.
	StructureHeader = "# Ordnerstruktur"
	// ContentsHeader opens the file contents section of the report.
	ContentsHeader = "# Inhalte der Code-Dateien"
	// FileHeaderFormat introduces each embedded file with its base name and full path.
	FileHeaderFormat = "# %s - %s"
	// FileReadErrorFormat replaces the content of a file that could not be read.
	FileReadErrorFormat = "# Fehler beim Lesen der Datei: %s"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// PackageLockFileName is omitted from the structure listing.
	PackageLockFileName = "package-lock.json"
	// ConfigFileName is the optional configuration file looked up in the working directory.
	ConfigFileName = ".codeoffolder.yaml"
)

// DefaultExtensions returns the file name suffixes embedded in the report.
func DefaultExtensions() []string {
	return []string{".h", ".cpp", ".txt", ".vert", ".frag"}
}

// DefaultIgnoredDirectories returns the directory names pruned at any depth.
func DefaultIgnoredDirectories() []string {
	return []string{"node_modules", "AntiQua-Node", "x64", "libs", GitDirectoryName}
}

// DefaultSkippedFiles returns the file names left out of the structure listing.
func DefaultSkippedFiles() []string {
	return []string{PackageLockFileName}
}

// Configuration discovery locations.
const (
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".codeoffolder"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
)
