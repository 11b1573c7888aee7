package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repopicker/internal/execshell"
)

const (
	apiSubcommandConstant                   = "api"
	methodFlagConstant                      = "-X"
	getMethodConstant                       = "GET"
	paginateFlagConstant                    = "--paginate"
	fieldFlagConstant                       = "-f"
	userRepositoriesEndpointConstant        = "user/repos"
	pageSizeFieldTemplateConstant           = "per_page=%d"
	affiliationFieldConstant                = "affiliation=owner,collaborator,organization_member"
	maximumPageSizeConstant                 = 100
	authSubcommandConstant                  = "auth"
	statusSubcommandConstant                = "status"
	hostnameFlagConstant                    = "--hostname"
	hostFieldNameConstant                   = "host"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	repositoryLimitDefaultValueConstant     = 200
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	listRepositoriesOperationNameConstant   = OperationName("ListRepositories")
	authStatusOperationNameConstant         = OperationName("AuthStatus")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryListOptions configures ListRepositories queries.
type RepositoryListOptions struct {
	ResultLimit int
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ListRepositories returns the full names of every repository the authenticated gh session owns, collaborates on, or reaches through organization membership.
// Pages are requested until gh stops paginating; at most ResultLimit names are returned.
func (client *Client) ListRepositories(executionContext context.Context, options RepositoryListOptions) ([]string, error) {
	resultLimit := options.ResultLimit
	if resultLimit <= 0 {
		resultLimit = repositoryLimitDefaultValueConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			methodFlagConstant,
			getMethodConstant,
			userRepositoriesEndpointConstant,
			paginateFlagConstant,
			fieldFlagConstant,
			fmt.Sprintf(pageSizeFieldTemplateConstant, min(resultLimit, maximumPageSizeConstant)),
			fieldFlagConstant,
			affiliationFieldConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listRepositoriesOperationNameConstant, Cause: executionError}
	}

	repositories := make([]string, 0, resultLimit)
	pageDecoder := json.NewDecoder(strings.NewReader(executionResult.StandardOutput))
	for len(repositories) < resultLimit {
		var page []struct {
			FullName string `json:"full_name"`
		}
		decodingError := pageDecoder.Decode(&page)
		if errors.Is(decodingError, io.EOF) {
			break
		}
		if decodingError != nil {
			return nil, ResponseDecodingError{Operation: listRepositoriesOperationNameConstant, Cause: decodingError}
		}
		for _, repositoryEntry := range page {
			if len(repositories) == resultLimit {
				break
			}
			repositories = append(repositories, repositoryEntry.FullName)
		}
	}

	return repositories, nil
}

// AuthStatus runs gh auth status for the host. A nil error means the CLI holds a usable session.
// A signed-out session is an expected answer, so the invocation is marked FailureExpected.
func (client *Client) AuthStatus(executionContext context.Context, host string) error {
	hostName := strings.TrimSpace(host)
	if len(hostName) == 0 {
		return InvalidInputError{FieldName: hostFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			authSubcommandConstant,
			statusSubcommandConstant,
			hostnameFlagConstant,
			hostName,
		},
		FailureExpected: true,
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: authStatusOperationNameConstant, Cause: executionError}
	}
	return nil
}
