package dependencies

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/execshell"
	"github.com/temirov/repopicker/internal/filesystem"
	"github.com/temirov/repopicker/internal/ui"
)

// ShellExecutor runs every external tool the picker depends on.
type ShellExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ResolveShellExecutor returns the provided executor or constructs a shell-backed default.
// With human-readable logging the structured command log is silenced and lifecycle
// events are rendered as console sentences instead.
func ResolveShellExecutor(existing ShellExecutor, logger *zap.Logger, humanReadableLogging bool) (ShellExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	commandRunner := execshell.NewOSCommandRunner()
	var shellExecutor *execshell.ShellExecutor
	var creationError error
	if humanReadableLogging {
		shellExecutor, creationError = execshell.NewShellExecutor(zap.NewNop(), commandRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		shellExecutor, creationError = execshell.NewShellExecutor(logger, commandRunner)
	}
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing filesystem.FileSystem) filesystem.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveToolLocator returns the provided locator or one that searches PATH.
func ResolveToolLocator(existing execshell.ToolLocator) execshell.ToolLocator {
	if existing != nil {
		return existing
	}
	return execshell.NewPathToolLocator()
}
