package catalog

import (
	"errors"
	"fmt"

	"github.com/temirov/repopicker/internal/execshell"
)

const (
	accountRequiredMessageConstant         = "GitHub username cannot be empty"
	noRepositoriesMessageConstant          = "no repositories found"
	missingToolErrorTemplateConstant       = "required tool %q is not installed"
	loggerMissingMessageConstant           = "catalog logger not configured"
	toolLocatorMissingMessageConstant      = "tool locator not configured"
	authCheckerMissingMessageConstant      = "authentication checker not configured"
	privilegedListerMissingMessageConstant = "privileged repository lister not configured"
	publicListerMissingMessageConstant     = "public repository lister not configured"
)

var (
	// ErrAccountRequired indicates the account name was empty or whitespace.
	ErrAccountRequired = errors.New(accountRequiredMessageConstant)
	// ErrNoRepositories indicates the listing produced no identifiers.
	ErrNoRepositories = errors.New(noRepositoriesMessageConstant)
	// ErrLoggerNotConfigured indicates a nil logger dependency.
	ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)
	// ErrToolLocatorNotConfigured indicates a nil tool locator dependency.
	ErrToolLocatorNotConfigured = errors.New(toolLocatorMissingMessageConstant)
	// ErrAuthenticationCheckerNotConfigured indicates a nil authentication checker dependency.
	ErrAuthenticationCheckerNotConfigured = errors.New(authCheckerMissingMessageConstant)
	// ErrPrivilegedListerNotConfigured indicates a nil privileged lister dependency.
	ErrPrivilegedListerNotConfigured = errors.New(privilegedListerMissingMessageConstant)
	// ErrPublicListerNotConfigured indicates a nil public lister dependency.
	ErrPublicListerNotConfigured = errors.New(publicListerMissingMessageConstant)
)

// MissingToolError reports a prerequisite executable that could not be found on PATH.
type MissingToolError struct {
	Tool  execshell.CommandName
	Cause error
}

// Error names the missing tool.
func (toolError MissingToolError) Error() string {
	return fmt.Sprintf(missingToolErrorTemplateConstant, toolError.Tool)
}

// Unwrap exposes the lookup failure.
func (toolError MissingToolError) Unwrap() error {
	return toolError.Cause
}

// RequireTool returns MissingToolError when the locator cannot resolve the tool.
func RequireTool(locator execshell.ToolLocator, tool execshell.CommandName) error {
	if locator == nil {
		return ErrToolLocatorNotConfigured
	}
	if _, lookupError := locator.LookPath(tool); lookupError != nil {
		return MissingToolError{Tool: tool, Cause: lookupError}
	}
	return nil
}
