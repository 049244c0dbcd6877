// Package clipboard copies a finished report to the system clipboard.
package clipboard

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// CopyFile places the content of the file at path on the clipboard through copier.
func CopyFile(copier Copier, path string) error {
	content, readError := os.ReadFile(path)
	if readError != nil {
		return fmt.Errorf("read %s for clipboard: %w", path, readError)
	}
	if copyError := copier.Copy(string(content)); copyError != nil {
		return fmt.Errorf("copy %s to clipboard: %w", path, copyError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
