package githubapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/temirov/repopicker/internal/execshell"
)

const (
	failFlagConstant                        = "--fail"
	silentFlagConstant                      = "--silent"
	showErrorFlagConstant                   = "--show-error"
	locationFlagConstant                    = "--location"
	usersPathSegmentConstant                = "users"
	reposPathSegmentConstant                = "repos"
	perPageQueryParameterConstant           = "per_page"
	repositoryLimitDefaultValueConstant     = 200
	executorNotConfiguredMessageConstant    = "github api executor not configured"
	accountFieldNameConstant                = "account"
	baseURLFieldNameConstant                = "base_url"
	requiredValueMessageConstant            = "value required"
	invalidBaseURLMessageTemplateConstant   = "invalid url %q"
	invalidInputErrorTemplateConstant       = "%s: %s"
	operationErrorMessageTemplateConstant   = "failed to fetch repositories for %s from the GitHub API"
	operationErrorWithCauseTemplateConstant = "failed to fetch repositories for %s from the GitHub API: %s"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// CurlCommandExecutor is the subset of execshell.ShellExecutor used for HTTP requests.
type CurlCommandExecutor interface {
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryListOptions configures ListPublicRepositories.
type RepositoryListOptions struct {
	ResultLimit int
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for client inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError reports a failed listing. Network failures, HTTP errors, and
// rate limiting are not distinguished.
type OperationError struct {
	Account string
	Cause   error
}

// Error describes the failed listing.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Account)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Account, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Client reads the public repository listing endpoint without credentials.
type Client struct {
	executor CurlCommandExecutor
	baseURL  *url.URL
}

// NewClient constructs a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(executor CurlCommandExecutor, baseURL string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}

	trimmedBaseURL := strings.TrimSpace(baseURL)
	if len(trimmedBaseURL) == 0 {
		trimmedBaseURL = DefaultBaseURL
	}

	parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
	if parseError != nil || len(parsedBaseURL.Scheme) == 0 || len(parsedBaseURL.Host) == 0 {
		return nil, InvalidInputError{FieldName: baseURLFieldNameConstant, Message: fmt.Sprintf(invalidBaseURLMessageTemplateConstant, trimmedBaseURL)}
	}

	return &Client{executor: executor, baseURL: parsedBaseURL}, nil
}

// RepositoriesURL returns the listing endpoint for the account.
func (client *Client) RepositoriesURL(account string, resultLimit int) string {
	if resultLimit <= 0 {
		resultLimit = repositoryLimitDefaultValueConstant
	}
	endpoint := client.baseURL.JoinPath(usersPathSegmentConstant, account, reposPathSegmentConstant)
	query := url.Values{}
	query.Set(perPageQueryParameterConstant, strconv.Itoa(resultLimit))
	endpoint.RawQuery = query.Encode()
	return endpoint.String()
}

// ListPublicRepositories issues a single GET and returns the full_name of every repository in the response.
func (client *Client) ListPublicRepositories(executionContext context.Context, account string, options RepositoryListOptions) ([]string, error) {
	accountName := strings.TrimSpace(account)
	if len(accountName) == 0 {
		return nil, InvalidInputError{FieldName: accountFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			failFlagConstant,
			silentFlagConstant,
			showErrorFlagConstant,
			locationFlagConstant,
			client.RepositoriesURL(accountName, options.ResultLimit),
		},
	}

	executionResult, executionError := client.executor.ExecuteCurl(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Account: accountName, Cause: executionError}
	}

	var response []struct {
		FullName string `json:"full_name"`
	}
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response); decodingError != nil {
		return nil, OperationError{Account: accountName, Cause: decodingError}
	}

	repositories := make([]string, 0, len(response))
	for _, repositoryEntry := range response {
		repositories = append(repositories, repositoryEntry.FullName)
	}
	return repositories, nil
}
