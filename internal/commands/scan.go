// Package commands contains the traversal and report logic behind the codeoffolder command.
package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/codeoffolder/internal/types"
	"github.com/temirov/codeoffolder/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// Scan walks rootFolder top-down and returns the structure lines together with
// the paths of files whose names end with one of settings.Extensions.
//
// The root is resolved to a clean absolute path first, so the depth of every
// line is its distance below that root regardless of how the path was typed.
// Directories named in settings.IgnoredDirectories are pruned at any depth.
// Enumeration failures are returned to the caller.
func Scan(rootFolder string, settings types.ScanSettings) (types.ScanResult, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootFolder)
	if absolutePathError != nil {
		return types.ScanResult{}, fmt.Errorf(errorAbsolutePathFormat, rootFolder, absolutePathError)
	}

	scanner := &folderScanner{settings: settings}
	if walkError := scanner.visitDirectory(filepath.Clean(absoluteRootPath), 0); walkError != nil {
		return types.ScanResult{}, walkError
	}
	return scanner.result, nil
}

type folderScanner struct {
	settings types.ScanSettings
	result   types.ScanResult
}

// visitDirectory records the directory line, then its files, then descends
// into the subdirectories that survive pruning.
func (scanner *folderScanner) visitDirectory(directoryPath string, depth int) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	scanner.result.StructureLines = append(scanner.result.StructureLines, utils.StructurePrefix(depth)+filepath.Base(directoryPath))

	filePrefix := utils.FilePrefix(depth)
	var subdirectoryPaths []string
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() {
			if !utils.ContainsString(scanner.settings.IgnoredDirectories, entryName) {
				subdirectoryPaths = append(subdirectoryPaths, filepath.Join(directoryPath, entryName))
			}
			continue
		}
		if isDirectoryLink(directoryPath, directoryEntry) {
			continue
		}
		if utils.ContainsString(scanner.settings.SkippedFiles, entryName) {
			continue
		}
		if utils.HasAnySuffix(entryName, scanner.settings.Extensions) {
			scanner.result.CodeFilePaths = append(scanner.result.CodeFilePaths, filepath.Join(directoryPath, entryName))
		}
		scanner.result.StructureLines = append(scanner.result.StructureLines, filePrefix+entryName)
	}

	for _, subdirectoryPath := range subdirectoryPaths {
		if visitError := scanner.visitDirectory(subdirectoryPath, depth+1); visitError != nil {
			return visitError
		}
	}
	return nil
}

// isDirectoryLink reports whether entry is a symbolic link resolving to a directory.
// Such links are neither listed nor followed; dangling links count as files.
func isDirectoryLink(directoryPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(filepath.Join(directoryPath, directoryEntry.Name()))
	return statError == nil && targetInfo.IsDir()
}
