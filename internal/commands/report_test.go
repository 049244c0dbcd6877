package commands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/codeoffolder/internal/commands"
	"github.com/temirov/codeoffolder/internal/types"
)

type runeCounter struct{}

func (runeCounter) Name() string { return "runes" }

func (runeCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

// TestWriteReportLayout verifies headers, structure lines and embedded content byte for byte.
func TestWriteReportLayout(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	firstPath := filepath.Join(rootDirectory, "a.cpp")
	secondPath := filepath.Join(rootDirectory, "b.h")
	if writeError := os.WriteFile(firstPath, []byte("int main() {}\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}
	if writeError := os.WriteFile(secondPath, []byte("#pragma once"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}
	outputPath := filepath.Join(testingHandle.TempDir(), "CodeOfFolder.txt")

	summary, reportError := commands.WriteReport([]string{"root", "├── a.cpp", "├── b.h"}, []string{firstPath, secondPath}, outputPath, commands.ReportOptions{})
	if reportError != nil {
		testingHandle.Fatalf("WriteReport error: %v", reportError)
	}

	reportBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("reading report: %v", readError)
	}
	expected := "# Ordnerstruktur\n\n" +
		"root\n├── a.cpp\n├── b.h\n" +
		"\n# Inhalte der Code-Dateien\n\n" +
		"# a.cpp - " + firstPath + "\n" +
		"int main() {}\n\n\n" +
		"# b.h - " + secondPath + "\n" +
		"#pragma once\n\n"
	if string(reportBytes) != expected {
		testingHandle.Fatalf("unexpected report:\n%q\nexpected:\n%q", string(reportBytes), expected)
	}
	if summary.Files != 2 || summary.FailedFiles != 0 || summary.Bytes != int64(len("int main() {}\n")+len("#pragma once")) {
		testingHandle.Fatalf("unexpected summary: %+v", summary)
	}
}

// TestWriteReportContinuesAfterUnreadableFile verifies a deleted file degrades to a placeholder.
func TestWriteReportContinuesAfterUnreadableFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	deletedPath := filepath.Join(rootDirectory, "gone.cpp")
	keptPath := filepath.Join(rootDirectory, "kept.txt")
	if writeError := os.WriteFile(keptPath, []byte("still here"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}
	outputPath := filepath.Join(testingHandle.TempDir(), "report.txt")

	observedCore, observedLogs := observer.New(zap.WarnLevel)
	summary, reportError := commands.WriteReport(nil, []string{deletedPath, keptPath}, outputPath, commands.ReportOptions{Logger: zap.New(observedCore)})
	if reportError != nil {
		testingHandle.Fatalf("WriteReport error: %v", reportError)
	}

	reportBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("reading report: %v", readError)
	}
	report := string(reportBytes)
	if !strings.Contains(report, "# gone.cpp - "+deletedPath+"\n# Fehler beim Lesen der Datei: ") {
		testingHandle.Fatalf("missing error placeholder:\n%s", report)
	}
	if !strings.HasSuffix(report, "# kept.txt - "+keptPath+"\nstill here\n\n") {
		testingHandle.Fatalf("report truncated after failure:\n%s", report)
	}
	if summary.FailedFiles != 1 || summary.Files != 2 {
		testingHandle.Fatalf("unexpected summary: %+v", summary)
	}
	if observedLogs.Len() != 1 {
		testingHandle.Fatalf("expected one warning, got %d", observedLogs.Len())
	}
}

// TestReadCodeFileRejectsInvalidUTF8 verifies that undecodable content yields a failure result.
func TestReadCodeFileRejectsInvalidUTF8(testingHandle *testing.T) {
	binaryPath := filepath.Join(testingHandle.TempDir(), "image.txt")
	if writeError := os.WriteFile(binaryPath, []byte{0xff, 0xfe, 0x00}, 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}
	fileContent := commands.ReadCodeFile(binaryPath)
	if fileContent.Succeeded() {
		testingHandle.Fatalf("expected failure for invalid UTF-8")
	}
	if fileContent.Name != "image.txt" || !strings.Contains(fileContent.ReadError, "UTF-8") {
		testingHandle.Fatalf("unexpected result: %+v", fileContent)
	}
}

// TestReadCodeFilePreservesContent verifies content is returned without transformation.
func TestReadCodeFilePreservesContent(testingHandle *testing.T) {
	content := "line one\r\nline two\n\tÄÖÜ ß\n"
	sourcePath := filepath.Join(testingHandle.TempDir(), "unicode.h")
	if writeError := os.WriteFile(sourcePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}
	fileContent := commands.ReadCodeFile(sourcePath)
	if !fileContent.Succeeded() || fileContent.Content != content {
		testingHandle.Fatalf("unexpected result: %+v", fileContent)
	}
}

// TestWriteReportIsIdempotent verifies two runs over an unchanged tree produce identical bytes.
func TestWriteReportIsIdempotent(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTree(testingHandle, rootDirectory, map[string]string{
		"src/main.cpp":        "int main() { return 0; }\n",
		"src/shaders/a.vert":  "void main() {}",
		"docs/readme.txt":     "docs",
		"node_modules/x.cpp":  "ignored",
		"assets/package.json": "{}",
	})
	outputDirectory := testingHandle.TempDir()

	var reports [2][]byte
	for index := range reports {
		scanResult, scanError := commands.Scan(rootDirectory, defaultSettings())
		if scanError != nil {
			testingHandle.Fatalf("Scan error: %v", scanError)
		}
		outputPath := filepath.Join(outputDirectory, "run.txt")
		if _, reportError := commands.WriteReport(scanResult.StructureLines, scanResult.CodeFilePaths, outputPath, commands.ReportOptions{}); reportError != nil {
			testingHandle.Fatalf("WriteReport error: %v", reportError)
		}
		reportBytes, readError := os.ReadFile(outputPath)
		if readError != nil {
			testingHandle.Fatalf("reading report: %v", readError)
		}
		reports[index] = reportBytes
	}
	if !bytes.Equal(reports[0], reports[1]) {
		testingHandle.Fatalf("reports differ between runs")
	}
	if bytes.Contains(reports[0], []byte("ignored")) {
		testingHandle.Fatalf("ignored directory content leaked into report")
	}
}

// TestWriteReportFailsForUncreatableOutput verifies output errors are returned.
func TestWriteReportFailsForUncreatableOutput(testingHandle *testing.T) {
	outputPath := filepath.Join(testingHandle.TempDir(), "missing", "report.txt")
	if _, reportError := commands.WriteReport(nil, nil, outputPath, commands.ReportOptions{}); reportError == nil {
		testingHandle.Fatalf("expected error for uncreatable output")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// TestRenderReportReturnsWriteError verifies the first write failure is surfaced.
func TestRenderReportReturnsWriteError(testingHandle *testing.T) {
	if _, renderError := commands.RenderReport(failingWriter{}, []string{"root"}, nil, commands.ReportOptions{}); renderError == nil {
		testingHandle.Fatalf("expected write error")
	}
}

// TestRenderReportCountsTokens verifies the optional token summary.
func TestRenderReportCountsTokens(testingHandle *testing.T) {
	sourcePath := filepath.Join(testingHandle.TempDir(), "a.txt")
	if writeError := os.WriteFile(sourcePath, []byte("abcd"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}
	var buffer bytes.Buffer
	summary, renderError := commands.RenderReport(&buffer, nil, []string{sourcePath}, commands.ReportOptions{TokenCounter: runeCounter{}, TokenModel: "runes"})
	if renderError != nil {
		testingHandle.Fatalf("RenderReport error: %v", renderError)
	}
	if summary.Tokens != 4 || summary.Model != "runes" {
		testingHandle.Fatalf("unexpected summary: %+v", summary)
	}
	line := commands.FormatSummaryLine(summary)
	if line != "Summary: 1 file, 4b, 4 tokens (runes)" {
		testingHandle.Fatalf("unexpected summary line %q", line)
	}
}

// TestFormatSummaryLineMentionsFailures verifies unreadable files are reported.
func TestFormatSummaryLineMentionsFailures(testingHandle *testing.T) {
	line := commands.FormatSummaryLine(types.ReportSummary{Files: 3, FailedFiles: 1, Bytes: 2048})
	if line != "Summary: 3 files, 2kb, 1 unreadable" {
		testingHandle.Fatalf("unexpected summary line %q", line)
	}
}
