// Package types defines every cross‑package data structure used by the codeoffolder CLI.
package types

// ScanSettings controls which directories are pruned and which files are embedded.
type ScanSettings struct {
	Extensions         []string
	IgnoredDirectories []string
	SkippedFiles       []string
}

// ScanResult holds the structure listing and the matched files of one traversal.
type ScanResult struct {
	StructureLines []string
	CodeFilePaths  []string
}

// FileContent is the outcome of reading one matched file.
// Content is meaningful only when ReadError is empty.
type FileContent struct {
	Path      string
	Name      string
	Content   string
	ReadError string
}

// Succeeded reports whether the file was read and decoded.
func (fileContent FileContent) Succeeded() bool {
	return fileContent.ReadError == ""
}

// ReportSummary captures aggregate information about an embedded report.
type ReportSummary struct {
	Files       int
	FailedFiles int
	Bytes       int64
	Tokens      int
	Model       string
}
