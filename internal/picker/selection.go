package picker

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/temirov/repopicker/internal/catalog"
)

const (
	selectionNotNumericMessageConstant     = "invalid selection: not a number"
	selectionOutOfRangeTemplateConstant    = "invalid selection %q: out of range (1-%d)"
	menuEntryTemplateConstant              = "%d) %s\n"
	selectionPromptConstant                = "Enter the number of the repo to clone/update: "
	emptyMenuMessageConstant               = "no repositories to select from"
	selectionPromptFailureTemplateConstant = "failed to read selection: %w"
	menuRenderFailureTemplateConstant      = "failed to render menu: %w"
)

var (
	// ErrSelectionNotNumeric indicates the selection contained something other than decimal digits.
	ErrSelectionNotNumeric = errors.New(selectionNotNumericMessageConstant)
	// ErrEmptyMenu indicates Select was called without repositories.
	ErrEmptyMenu = errors.New(emptyMenuMessageConstant)
)

// SelectionOutOfRangeError reports a numeric selection outside [1, Count].
type SelectionOutOfRangeError struct {
	Selection string
	Count     int
}

// Error describes the out-of-range selection.
func (rangeError SelectionOutOfRangeError) Error() string {
	return fmt.Sprintf(selectionOutOfRangeTemplateConstant, rangeError.Selection, rangeError.Count)
}

// ParseSelection converts a 1-based selection into a 0-based index.
// Digits are checked before the range, so "-1" is not numeric while "0" is out of range.
func ParseSelection(input string, count int) (int, error) {
	if len(input) == 0 {
		return 0, ErrSelectionNotNumeric
	}
	for _, character := range input {
		if character < '0' || character > '9' {
			return 0, ErrSelectionNotNumeric
		}
	}

	selection, parseError := strconv.Atoi(input)
	if parseError != nil || selection < 1 || selection > count {
		return 0, SelectionOutOfRangeError{Selection: input, Count: count}
	}
	return selection - 1, nil
}

// RenderMenu writes one "N) owner/name" line per repository, numbered from 1.
func RenderMenu(output io.Writer, repositories []catalog.RepositoryIdentifier) error {
	for index, repository := range repositories {
		if _, writeError := fmt.Fprintf(output, menuEntryTemplateConstant, index+1, repository); writeError != nil {
			return writeError
		}
	}
	return nil
}

// LinePrompter reads a single response to a prompt.
type LinePrompter interface {
	Prompt(prompt string) (string, error)
}

// Selector renders the menu and reads one validated choice. There is no retry on invalid input.
type Selector struct {
	prompter LinePrompter
	output   io.Writer
}

// NewSelector constructs a Selector writing the menu to output.
func NewSelector(prompter LinePrompter, output io.Writer) *Selector {
	if output == nil {
		output = io.Discard
	}
	return &Selector{prompter: prompter, output: output}
}

// Select returns the chosen repository.
func (selector *Selector) Select(repositories []catalog.RepositoryIdentifier) (catalog.RepositoryIdentifier, error) {
	if len(repositories) == 0 {
		return "", ErrEmptyMenu
	}
	if renderError := RenderMenu(selector.output, repositories); renderError != nil {
		return "", fmt.Errorf(menuRenderFailureTemplateConstant, renderError)
	}

	response, promptError := selector.prompter.Prompt(selectionPromptConstant)
	if promptError != nil {
		return "", fmt.Errorf(selectionPromptFailureTemplateConstant, promptError)
	}

	index, selectionError := ParseSelection(response, len(repositories))
	if selectionError != nil {
		return "", selectionError
	}
	return repositories[index], nil
}
