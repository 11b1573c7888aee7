package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/catalog"
	"github.com/temirov/repopicker/internal/execshell"
	"github.com/temirov/repopicker/internal/filesystem"
	"github.com/temirov/repopicker/internal/gitrepo"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	fileSystemMissingMessageConstant            = "filesystem not configured"
	loggerMissingMessageConstant                = "workspace logger not configured"
	gitMetadataDirectoryNameConstant            = ".git"
	gitCloneSubcommandConstant                  = "clone"
	gitEndOfOptionsMarkerConstant               = "--"
	gitPullSubcommandConstant                   = "pull"
	gitPullFastForwardFlagConstant              = "--ff-only"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	defaultHostConstant                         = "github.com"
	defaultDestinationRootConstant              = "."
	destinationRootPermissionsConstant          = fs.FileMode(0o755)
	inspectFailureTemplateConstant              = "failed to inspect %s: %w"
	remoteFailureTemplateConstant               = "failed to build remote for %s: %w"
	prepareFailureTemplateConstant              = "failed to prepare %s: %w"
	cloneFailureTemplateConstant                = "failed to clone %s: %w"
	updateFailureTemplateConstant               = "failed to update %s: %w"
	summaryTemplateConstant                     = "%s: %s -> %s"
	materializingMessageConstant                = "Materializing repository"
	logFieldRepositoryConstant                  = "repository"
	logFieldDirectoryConstant                   = "directory"
	logFieldActionConstant                      = "action"
)

// Action names the change applied to the working copy.
type Action string

// Supported actions.
const (
	ActionCloned  Action = Action("cloned")
	ActionUpdated Action = Action("updated")
)

var (
	// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
	ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)
	// ErrFileSystemNotConfigured indicates the filesystem dependency was missing.
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)
	// ErrLoggerNotConfigured indicates the logger dependency was missing.
	ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)
)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Dependencies enumerates external collaborators required by Service.
type Dependencies struct {
	Logger      *zap.Logger
	GitExecutor GitExecutor
	FileSystem  filesystem.FileSystem
}

// Options configures where, from which host and over which protocol working copies are materialized.
type Options struct {
	Host            string
	DestinationRoot string
	Protocol        gitrepo.RemoteProtocol
}

// Result captures the observable outcome of Materialize.
type Result struct {
	Repository catalog.RepositoryIdentifier
	Directory  string
	Action     Action
}

// Summary renders a one-line report such as "CLONED: alice/m -> m".
func (result Result) Summary() string {
	return fmt.Sprintf(summaryTemplateConstant, strings.ToUpper(string(result.Action)), result.Repository, result.Directory)
}

// Service clones or fast-forwards a repository's local working copy.
type Service struct {
	logger          *zap.Logger
	executor        GitExecutor
	fileSystem      filesystem.FileSystem
	host            string
	destinationRoot string
	protocol        gitrepo.RemoteProtocol
}

// NewService constructs a Service. Empty options select github.com, the current directory and SSH remotes.
func NewService(dependencies Dependencies, options Options) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	host := strings.TrimSpace(options.Host)
	if len(host) == 0 {
		host = defaultHostConstant
	}
	destinationRoot := strings.TrimSpace(options.DestinationRoot)
	if len(destinationRoot) == 0 {
		destinationRoot = defaultDestinationRootConstant
	}
	protocol := options.Protocol
	if len(protocol) == 0 {
		protocol = gitrepo.RemoteProtocolSSH
	}

	return &Service{
		logger:          dependencies.Logger,
		executor:        dependencies.GitExecutor,
		fileSystem:      dependencies.FileSystem,
		host:            host,
		destinationRoot: destinationRoot,
		protocol:        protocol,
	}, nil
}

// Materialize pulls with --ff-only when <root>/<name>/.git exists and clones otherwise.
// Divergent histories fail with git's own error output; nothing is rolled back.
func (service *Service) Materialize(executionContext context.Context, repository catalog.RepositoryIdentifier) (Result, error) {
	directory := filepath.Join(service.destinationRoot, repository.Name())
	result := Result{Repository: repository, Directory: directory}

	hasMetadata, inspectError := service.hasGitMetadata(directory)
	if inspectError != nil {
		return Result{}, fmt.Errorf(inspectFailureTemplateConstant, directory, inspectError)
	}

	if hasMetadata {
		result.Action = ActionUpdated
	} else {
		result.Action = ActionCloned
	}
	service.logger.Debug(materializingMessageConstant,
		zap.String(logFieldRepositoryConstant, repository.String()),
		zap.String(logFieldDirectoryConstant, directory),
		zap.String(logFieldActionConstant, string(result.Action)),
	)

	if hasMetadata {
		if updateError := service.update(executionContext, directory); updateError != nil {
			return Result{}, fmt.Errorf(updateFailureTemplateConstant, repository, updateError)
		}
		return result, nil
	}

	if cloneError := service.clone(executionContext, repository, directory); cloneError != nil {
		return Result{}, cloneError
	}
	return result, nil
}

func (service *Service) hasGitMetadata(directory string) (bool, error) {
	_, statError := service.fileSystem.Stat(filepath.Join(directory, gitMetadataDirectoryNameConstant))
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, statError
}

func (service *Service) update(executionContext context.Context, directory string) error {
	_, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitPullSubcommandConstant, gitPullFastForwardFlagConstant},
		WorkingDirectory:     directory,
		EnvironmentVariables: disabledTerminalPrompt(),
	})
	return executionError
}

func (service *Service) clone(executionContext context.Context, repository catalog.RepositoryIdentifier, directory string) error {
	remote, remoteError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   service.protocol,
		Host:       service.host,
		Owner:      repository.Owner(),
		Repository: repository.Name(),
	})
	if remoteError != nil {
		return fmt.Errorf(remoteFailureTemplateConstant, repository, remoteError)
	}

	if service.destinationRoot != defaultDestinationRootConstant {
		if prepareError := service.fileSystem.MkdirAll(service.destinationRoot, destinationRootPermissionsConstant); prepareError != nil {
			return fmt.Errorf(prepareFailureTemplateConstant, service.destinationRoot, prepareError)
		}
	}

	_, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, gitEndOfOptionsMarkerConstant, remote, directory},
		EnvironmentVariables: disabledTerminalPrompt(),
	})
	if executionError != nil {
		return fmt.Errorf(cloneFailureTemplateConstant, repository, executionError)
	}
	return nil
}

func disabledTerminalPrompt() map[string]string {
	return map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant}
}
