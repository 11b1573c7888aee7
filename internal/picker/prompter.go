package picker

import (
	"bufio"
	"io"
	"strings"
)

// IOLinePrompter writes a prompt and reads one line of input.
type IOLinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOLinePrompter constructs a prompter from the provided reader and writer.
func NewIOLinePrompter(input io.Reader, output io.Writer) *IOLinePrompter {
	return &IOLinePrompter{reader: bufio.NewReader(input), writer: output}
}

// Prompt returns the next line with surrounding whitespace removed. End of input yields whatever was read.
func (prompter *IOLinePrompter) Prompt(prompt string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return "", readError
	}
	return strings.TrimSpace(response), nil
}
