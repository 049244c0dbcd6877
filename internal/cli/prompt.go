package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	scanCurrentFolderPrompt = "Möchten Sie den aktuellen Ordner scannen (J/N)? "
	folderPathPrompt        = "Geben Sie den Pfad zum Ordner ein: "
	affirmativeAnswer       = "j"
	invalidFolderMessage    = "Der eingegebene Pfad ist kein gültiger Ordner."
	successMessageFormat    = "Ordnerstruktur und Code-Inhalte erfolgreich in '%s' gespeichert."
	readAnswerErrorFormat   = "reading answer: %w"
)

// promptForRootFolder asks whether to scan workingDirectory and, when the
// answer is not "j", asks for a folder path. The path is returned as typed.
func promptForRootFolder(input io.Reader, output io.Writer, workingDirectory string) (string, error) {
	reader := bufio.NewReader(input)

	fmt.Fprint(output, scanCurrentFolderPrompt)
	answer, answerError := readLine(reader)
	if answerError != nil {
		return "", answerError
	}
	if strings.EqualFold(strings.TrimSpace(answer), affirmativeAnswer) {
		return workingDirectory, nil
	}

	fmt.Fprint(output, folderPathPrompt)
	return readLine(reader)
}

// readLine returns one line without its terminator. End of input yields
// whatever was read so far.
func readLine(reader *bufio.Reader) (string, error) {
	line, readError := reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", fmt.Errorf(readAnswerErrorFormat, readError)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
