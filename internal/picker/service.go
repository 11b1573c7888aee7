package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/catalog"
	"github.com/temirov/repopicker/internal/execshell"
	"github.com/temirov/repopicker/internal/workspace"
)

const (
	accountPromptConstant                = "GitHub username: "
	accountPromptFailureTemplateConstant = "failed to read GitHub username: %w"
	loggerMissingMessageConstant         = "picker logger not configured"
	toolLocatorMissingMessageConstant    = "tool locator not configured"
	proberMissingMessageConstant         = "capability prober not configured"
	enumeratorMissingMessageConstant     = "repository enumerator not configured"
	materializerMissingMessageConstant   = "materializer not configured"
	prompterMissingMessageConstant       = "prompter not configured"
	capabilitiesResolvedMessageConstant  = "Resolved listing capabilities"
	repositorySelectedMessageConstant    = "Repository selected"
	logFieldPrivilegedConstant           = "privileged"
	logFieldRepositoryConstant           = "repository"
	defaultHostConstant                  = "github.com"
)

var (
	// ErrLoggerNotConfigured indicates a nil logger dependency.
	ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)
	// ErrToolLocatorNotConfigured indicates a nil tool locator dependency.
	ErrToolLocatorNotConfigured = errors.New(toolLocatorMissingMessageConstant)
	// ErrProberNotConfigured indicates a nil capability prober dependency.
	ErrProberNotConfigured = errors.New(proberMissingMessageConstant)
	// ErrEnumeratorNotConfigured indicates a nil enumerator dependency.
	ErrEnumeratorNotConfigured = errors.New(enumeratorMissingMessageConstant)
	// ErrMaterializerNotConfigured indicates a nil materializer dependency.
	ErrMaterializerNotConfigured = errors.New(materializerMissingMessageConstant)
	// ErrPrompterNotConfigured indicates a nil prompter dependency.
	ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)
)

// CapabilityProber reports which listing strategy is usable.
type CapabilityProber interface {
	Probe(executionContext context.Context, host string) catalog.Capabilities
}

// RepositoryEnumerator lists an account's repositories.
type RepositoryEnumerator interface {
	Enumerate(executionContext context.Context, account string, capabilities catalog.Capabilities) ([]catalog.RepositoryIdentifier, error)
}

// Materializer clones or updates the chosen repository.
type Materializer interface {
	Materialize(executionContext context.Context, repository catalog.RepositoryIdentifier) (workspace.Result, error)
}

// Dependencies enumerates the collaborators required by Service.
type Dependencies struct {
	Logger       *zap.Logger
	ToolLocator  execshell.ToolLocator
	Prober       CapabilityProber
	Enumerator   RepositoryEnumerator
	Materializer Materializer
	Prompter     LinePrompter
	MenuOutput   io.Writer
}

// Options configures a picker run.
type Options struct {
	Host string
}

// Service runs the pick pipeline: username, probe, enumerate, select, materialize.
type Service struct {
	logger       *zap.Logger
	locator      execshell.ToolLocator
	prober       CapabilityProber
	enumerator   RepositoryEnumerator
	materializer Materializer
	prompter     LinePrompter
	selector     *Selector
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	switch {
	case dependencies.Logger == nil:
		return nil, ErrLoggerNotConfigured
	case dependencies.ToolLocator == nil:
		return nil, ErrToolLocatorNotConfigured
	case dependencies.Prober == nil:
		return nil, ErrProberNotConfigured
	case dependencies.Enumerator == nil:
		return nil, ErrEnumeratorNotConfigured
	case dependencies.Materializer == nil:
		return nil, ErrMaterializerNotConfigured
	case dependencies.Prompter == nil:
		return nil, ErrPrompterNotConfigured
	}

	return &Service{
		logger:       dependencies.Logger,
		locator:      dependencies.ToolLocator,
		prober:       dependencies.Prober,
		enumerator:   dependencies.Enumerator,
		materializer: dependencies.Materializer,
		prompter:     dependencies.Prompter,
		selector:     NewSelector(dependencies.Prompter, dependencies.MenuOutput),
	}, nil
}

// Run executes the pipeline once. Every failure aborts the run.
// The username is validated before the probe so an empty name never reaches the network.
func (service *Service) Run(executionContext context.Context, options Options) (workspace.Result, error) {
	if toolError := catalog.RequireTool(service.locator, execshell.CommandGit); toolError != nil {
		return workspace.Result{}, toolError
	}

	account, promptError := service.prompter.Prompt(accountPromptConstant)
	if promptError != nil {
		return workspace.Result{}, fmt.Errorf(accountPromptFailureTemplateConstant, promptError)
	}
	if len(strings.TrimSpace(account)) == 0 {
		return workspace.Result{}, catalog.ErrAccountRequired
	}

	host := strings.TrimSpace(options.Host)
	if len(host) == 0 {
		host = defaultHostConstant
	}

	capabilities := service.prober.Probe(executionContext, host)
	service.logger.Debug(capabilitiesResolvedMessageConstant, zap.Bool(logFieldPrivilegedConstant, capabilities.Privileged()))

	repositories, enumerationError := service.enumerator.Enumerate(executionContext, account, capabilities)
	if enumerationError != nil {
		return workspace.Result{}, enumerationError
	}

	repository, selectionError := service.selector.Select(repositories)
	if selectionError != nil {
		return workspace.Result{}, selectionError
	}
	service.logger.Debug(repositorySelectedMessageConstant, zap.String(logFieldRepositoryConstant, repository.String()))

	return service.materializer.Materialize(executionContext, repository)
}
