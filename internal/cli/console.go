package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// console prints user-facing messages, colored only when writing to a terminal.
type console struct {
	writer       io.Writer
	successColor *color.Color
	failureColor *color.Color
}

func newConsole(writer io.Writer) console {
	successColor := color.New(color.FgGreen)
	failureColor := color.New(color.FgRed)
	if isTerminal(writer) {
		successColor.EnableColor()
		failureColor.EnableColor()
	} else {
		successColor.DisableColor()
		failureColor.DisableColor()
	}
	return console{writer: writer, successColor: successColor, failureColor: failureColor}
}

func (messages console) success(message string) {
	messages.successColor.Fprintln(messages.writer, message)
}

func (messages console) failure(message string) {
	messages.failureColor.Fprintln(messages.writer, message)
}

func isTerminal(writer io.Writer) bool {
	fileHandle, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fileDescriptor := fileHandle.Fd()
	return isatty.IsTerminal(fileDescriptor) || isatty.IsCygwinTerminal(fileDescriptor)
}
