package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/execshell"
)

const (
	probeUnavailableMessageConstant     = "GitHub CLI not found; using the public API"
	probeUnauthenticatedMessageConstant = "GitHub CLI is not authenticated; using the public API"
	probePrivilegedMessageConstant      = "GitHub CLI is authenticated; listing repositories reachable by the session"
	logFieldHostConstant                = "host"
)

// AuthenticationChecker verifies that the GitHub CLI holds a session for a host.
type AuthenticationChecker interface {
	AuthStatus(executionContext context.Context, host string) error
}

// Capabilities records which listing strategy is usable for this run.
type Capabilities struct {
	GitHubCLIAvailable     bool
	GitHubCLIAuthenticated bool
}

// Privileged reports whether gh is both installed and authenticated.
func (capabilities Capabilities) Privileged() bool {
	return capabilities.GitHubCLIAvailable && capabilities.GitHubCLIAuthenticated
}

// ProbeDependencies enumerates the collaborators required by CapabilityProbe.
type ProbeDependencies struct {
	Logger                *zap.Logger
	ToolLocator           execshell.ToolLocator
	AuthenticationChecker AuthenticationChecker
}

// CapabilityProbe decides whether the privileged listing strategy is usable.
type CapabilityProbe struct {
	logger  *zap.Logger
	locator execshell.ToolLocator
	checker AuthenticationChecker
}

// NewCapabilityProbe validates dependencies and constructs a CapabilityProbe.
func NewCapabilityProbe(dependencies ProbeDependencies) (*CapabilityProbe, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.ToolLocator == nil {
		return nil, ErrToolLocatorNotConfigured
	}
	if dependencies.AuthenticationChecker == nil {
		return nil, ErrAuthenticationCheckerNotConfigured
	}
	return &CapabilityProbe{
		logger:  dependencies.Logger,
		locator: dependencies.ToolLocator,
		checker: dependencies.AuthenticationChecker,
	}, nil
}

// Probe never fails: a missing or unauthenticated gh only routes enumeration to the public API.
func (probe *CapabilityProbe) Probe(executionContext context.Context, host string) Capabilities {
	hostField := zap.String(logFieldHostConstant, host)

	if _, lookupError := probe.locator.LookPath(execshell.CommandGitHub); lookupError != nil {
		probe.logger.Debug(probeUnavailableMessageConstant, hostField, zap.Error(lookupError))
		return Capabilities{}
	}

	capabilities := Capabilities{GitHubCLIAvailable: true}
	if authError := probe.checker.AuthStatus(executionContext, host); authError != nil {
		probe.logger.Debug(probeUnauthenticatedMessageConstant, hostField, zap.Error(authError))
		return capabilities
	}

	capabilities.GitHubCLIAuthenticated = true
	probe.logger.Debug(probePrivilegedMessageConstant, hostField)
	return capabilities
}
