// Package utils contains general helper functions used across the codeoffolder tool.
package utils

import (
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// HasAnySuffix reports whether fileName ends with one of suffixes.
// The comparison is literal and case-sensitive: "a.old.txt" ends with ".txt",
// "a.txtold" does not.
func HasAnySuffix(fileName string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != EmptyString && strings.HasSuffix(fileName, suffix) {
			return true
		}
	}
	return false
}

// StructurePrefix returns the indentation placed before a directory line at depth.
// The root directory (depth 0) carries no prefix.
func StructurePrefix(depth int) string {
	if depth <= 0 {
		return EmptyString
	}
	return strings.Repeat(ContinuationMarker, depth-1) + BranchMarker
}

// FilePrefix returns the indentation placed before a file that lives in a directory at depth.
func FilePrefix(directoryDepth int) string {
	if directoryDepth < 0 {
		directoryDepth = 0
	}
	return strings.Repeat(ContinuationMarker, directoryDepth) + BranchMarker
}
