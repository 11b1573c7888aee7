package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/execshell"
	"github.com/temirov/repopicker/internal/githubapi"
	"github.com/temirov/repopicker/internal/githubcli"
)

const (
	defaultRepositoryLimitConstant           = 200
	privilegedListingFailureTemplateConstant = "failed to list repositories with gh: %w"
	publicListingFailureTemplateConstant     = "failed to list public repositories: %w"
	enumerationCompletedMessageConstant      = "Enumerated repositories"
	logFieldAccountConstant                  = "account"
	logFieldStrategyConstant                 = "strategy"
	logFieldCountConstant                    = "count"
	strategyPrivilegedConstant               = "gh"
	strategyPublicConstant                   = "public_api"
)

// PrivilegedLister lists every repository the authenticated GitHub CLI session owns, collaborates on, or reaches through an organization.
type PrivilegedLister interface {
	ListRepositories(executionContext context.Context, options githubcli.RepositoryListOptions) ([]string, error)
}

// PublicLister lists public repositories without credentials.
type PublicLister interface {
	ListPublicRepositories(executionContext context.Context, account string, options githubapi.RepositoryListOptions) ([]string, error)
}

// EnumeratorDependencies enumerates the collaborators required by Enumerator.
type EnumeratorDependencies struct {
	Logger           *zap.Logger
	ToolLocator      execshell.ToolLocator
	PrivilegedLister PrivilegedLister
	PublicLister     PublicLister
}

// Enumerator produces the sorted repository list for an account.
type Enumerator struct {
	logger     *zap.Logger
	locator    execshell.ToolLocator
	privileged PrivilegedLister
	public     PublicLister
	limit      int
}

// NewEnumerator validates dependencies and constructs an Enumerator. A non-positive limit selects 200.
func NewEnumerator(dependencies EnumeratorDependencies, limit int) (*Enumerator, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.ToolLocator == nil {
		return nil, ErrToolLocatorNotConfigured
	}
	if dependencies.PrivilegedLister == nil {
		return nil, ErrPrivilegedListerNotConfigured
	}
	if dependencies.PublicLister == nil {
		return nil, ErrPublicListerNotConfigured
	}
	if limit <= 0 {
		limit = defaultRepositoryLimitConstant
	}
	return &Enumerator{
		logger:     dependencies.Logger,
		locator:    dependencies.ToolLocator,
		privileged: dependencies.PrivilegedLister,
		public:     dependencies.PublicLister,
		limit:      limit,
	}, nil
}

// Enumerate lists repositories using exactly one strategy chosen by capabilities.
// The privileged strategy lists what the signed-in session can reach and is not narrowed by account;
// the public strategy lists the account's public repositories.
// The result is sorted, free of duplicates, and never empty.
func (enumerator *Enumerator) Enumerate(executionContext context.Context, account string, capabilities Capabilities) ([]RepositoryIdentifier, error) {
	accountName := strings.TrimSpace(account)
	if len(accountName) == 0 {
		return nil, ErrAccountRequired
	}

	var rawIdentifiers []string
	strategy := strategyPublicConstant
	if capabilities.Privileged() {
		strategy = strategyPrivilegedConstant
		listed, listError := enumerator.privileged.ListRepositories(executionContext, githubcli.RepositoryListOptions{ResultLimit: enumerator.limit})
		if listError != nil {
			return nil, fmt.Errorf(privilegedListingFailureTemplateConstant, listError)
		}
		rawIdentifiers = listed
	} else {
		if toolError := RequireTool(enumerator.locator, execshell.CommandCurl); toolError != nil {
			return nil, toolError
		}
		listed, listError := enumerator.public.ListPublicRepositories(executionContext, accountName, githubapi.RepositoryListOptions{ResultLimit: enumerator.limit})
		if listError != nil {
			return nil, fmt.Errorf(publicListingFailureTemplateConstant, listError)
		}
		rawIdentifiers = listed
	}

	identifiers, normalizeError := normalizeIdentifiers(rawIdentifiers)
	if normalizeError != nil {
		return nil, normalizeError
	}

	enumerator.logger.Debug(enumerationCompletedMessageConstant,
		zap.String(logFieldAccountConstant, accountName),
		zap.String(logFieldStrategyConstant, strategy),
		zap.Int(logFieldCountConstant, len(identifiers)),
	)

	if len(identifiers) == 0 {
		return nil, ErrNoRepositories
	}
	return identifiers, nil
}
