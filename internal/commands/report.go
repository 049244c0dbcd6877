package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/codeoffolder/internal/tokenizer"
	"github.com/temirov/codeoffolder/internal/types"
	"github.com/temirov/codeoffolder/internal/utils"
)

const (
	// errorCreateReportFormat is used when the report file cannot be created.
	errorCreateReportFormat = "creating report %s: %w"
	// errorWriteReportFormat is used when writing to the report fails.
	errorWriteReportFormat = "writing report %s: %w"
	// warningFileReadMessage is logged for every matched file that could not be embedded.
	warningFileReadMessage = "unable to read code file"
	// warningTokenCountMessage is logged when token estimation fails for a file.
	warningTokenCountMessage = "unable to count tokens"
)

// errInvalidUTF8 marks a file whose bytes do not decode as UTF-8 text.
var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReportOptions configures optional behavior of the reporter.
type ReportOptions struct {
	TokenCounter tokenizer.Counter
	TokenModel   string
	Logger       *zap.Logger
}

func (options ReportOptions) logger() *zap.Logger {
	if options.Logger == nil {
		return zap.NewNop()
	}
	return options.Logger
}

// ReadCodeFile reads the whole file at path as UTF-8 text.
// Failures are returned inside the result rather than as an error so that a
// caller can embed a placeholder and move on to the next file.
func ReadCodeFile(path string) types.FileContent {
	fileContent := types.FileContent{Path: path, Name: filepath.Base(path)}
	fileBytes, readError := os.ReadFile(path)
	if readError != nil {
		fileContent.ReadError = readError.Error()
		return fileContent
	}
	if !utf8.Valid(fileBytes) {
		fileContent.ReadError = fmt.Sprintf("%s: %v", path, errInvalidUTF8)
		return fileContent
	}
	fileContent.Content = string(fileBytes)
	return fileContent
}

// WriteReport creates or truncates outputFile and renders the report into it.
// Errors opening, writing or closing the output file are returned; unreadable
// code files are embedded as placeholders.
func WriteReport(structureLines []string, codeFilePaths []string, outputFile string, options ReportOptions) (summary types.ReportSummary, err error) {
	fileHandle, createError := os.Create(outputFile)
	if createError != nil {
		return types.ReportSummary{}, fmt.Errorf(errorCreateReportFormat, outputFile, createError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorWriteReportFormat, outputFile, closeError)
		}
	}()

	bufferedWriter := bufio.NewWriter(fileHandle)
	summary, renderError := RenderReport(bufferedWriter, structureLines, codeFilePaths, options)
	if renderError != nil {
		return summary, fmt.Errorf(errorWriteReportFormat, outputFile, renderError)
	}
	if flushError := bufferedWriter.Flush(); flushError != nil {
		return summary, fmt.Errorf(errorWriteReportFormat, outputFile, flushError)
	}
	return summary, nil
}

// RenderReport writes the structure section followed by the content of every
// code file, in the order given, to writer.
func RenderReport(writer io.Writer, structureLines []string, codeFilePaths []string, options ReportOptions) (types.ReportSummary, error) {
	reportWriter := &errorTrackingWriter{writer: writer}
	logger := options.logger()
	summary := types.ReportSummary{}

	reportWriter.printf("%s\n\n", utils.StructureHeader)
	for _, structureLine := range structureLines {
		reportWriter.printf("%s\n", structureLine)
	}
	reportWriter.printf("\n%s\n\n", utils.ContentsHeader)

	for _, codeFilePath := range codeFilePaths {
		fileContent := ReadCodeFile(codeFilePath)
		reportWriter.printf(utils.FileHeaderFormat+"\n", fileContent.Name, fileContent.Path)
		summary.Files++
		if !fileContent.Succeeded() {
			summary.FailedFiles++
			logger.Warn(warningFileReadMessage, zap.String("path", codeFilePath), zap.String("error", fileContent.ReadError))
			reportWriter.printf(utils.FileReadErrorFormat+"\n\n", fileContent.ReadError)
			continue
		}
		reportWriter.printf("%s\n\n", fileContent.Content)
		summary.Bytes += int64(len(fileContent.Content))
		if options.TokenCounter != nil {
			countResult, countError := tokenizer.CountText(options.TokenCounter, fileContent.Content)
			if countError != nil {
				logger.Warn(warningTokenCountMessage, zap.String("path", codeFilePath), zap.Error(countError))
			} else if countResult.Counted {
				summary.Tokens += countResult.Tokens
			}
		}
		if reportWriter.err != nil {
			break
		}
	}
	if summary.Tokens > 0 {
		summary.Model = options.TokenModel
	}
	return summary, reportWriter.err
}

// errorTrackingWriter remembers the first write error and drops later writes.
type errorTrackingWriter struct {
	writer io.Writer
	err    error
}

func (trackingWriter *errorTrackingWriter) printf(format string, arguments ...any) {
	if trackingWriter.err != nil {
		return
	}
	_, trackingWriter.err = fmt.Fprintf(trackingWriter.writer, format, arguments...)
}

// FormatSummaryLine renders a one-line description of a report summary.
func FormatSummaryLine(summary types.ReportSummary) string {
	line := fmt.Sprintf("Summary: %d file%s, %s", summary.Files, pluralSuffix(summary.Files), utils.FormatFileSize(summary.Bytes))
	if summary.FailedFiles > 0 {
		line += fmt.Sprintf(", %d unreadable", summary.FailedFiles)
	}
	if summary.Tokens > 0 {
		line += fmt.Sprintf(", %d tokens", summary.Tokens)
		if summary.Model != "" {
			line += fmt.Sprintf(" (%s)", summary.Model)
		}
	}
	return line
}

func pluralSuffix(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
