package cli

import (
	"os"
	"testing"
)

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(testingHandle *testing.T, directory string) {
	testingHandle.Helper()
	previousDirectory, getwdError := os.Getwd()
	if getwdError != nil {
		testingHandle.Fatal(getwdError)
	}
	if chdirError := os.Chdir(directory); chdirError != nil {
		testingHandle.Fatal(chdirError)
	}
	testingHandle.Cleanup(func() {
		if restoreError := os.Chdir(previousDirectory); restoreError != nil {
			panic("testing: chdirForTest cleanup: " + restoreError.Error())
		}
	})
}
