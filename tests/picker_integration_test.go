package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	pickerIntegrationGitLogVariable      = "PICKER_TEST_GIT_LOG"
	pickerIntegrationCurlLogVariable     = "PICKER_TEST_CURL_LOG"
	pickerIntegrationDestinationVariable = "REPOPICKER_PICKER_DESTINATION"
	pickerIntegrationGitLogName          = "git.log"
	pickerIntegrationCurlLogName         = "curl.log"
	pickerIntegrationDestinationName     = "repos"
	pickerIntegrationGitStubScript       = "#!/bin/sh\nprintf '%s\\n' \"$*\" >> \"$PICKER_TEST_GIT_LOG\"\nexit 0\n"
	pickerIntegrationAuthenticatedGhStub = "#!/bin/sh\nif [ \"$1\" = \"auth\" ]; then\n  exit 0\nfi\nif [ \"$1\" = \"api\" ]; then\n  printf '%s\\n' '[{\"full_name\":\"alice/beta\"},{\"full_name\":\"alice/alpha\"},{\"full_name\":\"alice/beta\"}]'\n  exit 0\nfi\nexit 1\n"
	pickerIntegrationSignedOutGhStub     = "#!/bin/sh\nif [ \"$1\" = \"auth\" ]; then\n  echo 'You are not logged into any GitHub hosts.' >&2\n  exit 1\nfi\nexit 1\n"
	pickerIntegrationDivergedGitStub     = "#!/bin/sh\nprintf '%s\\n' \"$*\" >> \"$PICKER_TEST_GIT_LOG\"\nif [ \"$1\" = \"pull\" ]; then\n  echo 'fatal: Not possible to fast-forward, aborting.' >&2\n  exit 128\nfi\nexit 0\n"
	pickerIntegrationCurlStubScript      = "#!/bin/sh\nprintf '%s\\n' \"$*\" >> \"$PICKER_TEST_CURL_LOG\"\nprintf '%s\\n' '[{\"full_name\":\"bob/tool\"},{\"full_name\":\"bob/app\"}]'\nexit 0\n"
	pickerIntegrationMenuPrompt          = "GitHub username: 1) alice/alpha\n2) alice/beta\nEnter the number of the repo to clone/update: "
)

func TestPickerIntegrationClonesWithAuthenticatedGitHubCLI(testInstance *testing.T) {
	sandbox := newIntegrationSandbox(testInstance)
	gitLogPath, destinationRoot := preparePickerSandbox(testInstance, sandbox)
	sandbox.installStub(testInstance, "gh", pickerIntegrationAuthenticatedGhStub)

	result := sandbox.run(testInstance, "alice\n2\n")

	require.Equal(testInstance, 0, result.ExitCode, result.Output)
	require.Contains(testInstance, result.Output, pickerIntegrationMenuPrompt)
	expectedDirectory := filepath.Join(destinationRoot, "beta")
	require.Contains(testInstance, result.Output, fmt.Sprintf("CLONED: alice/beta -> %s\n", expectedDirectory))
	require.Equal(testInstance, []string{fmt.Sprintf("clone -- git@github.com:alice/beta.git %s", expectedDirectory)}, readInvocationLog(testInstance, gitLogPath))
}

func TestPickerIntegrationFallsBackToPublicAPI(testInstance *testing.T) {
	testCases := []struct {
		name         string
		installGhCLI bool
	}{
		{name: "gh_missing", installGhCLI: false},
		{name: "gh_signed_out", installGhCLI: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			sandbox := newIntegrationSandbox(testInstance)
			gitLogPath, destinationRoot := preparePickerSandbox(testInstance, sandbox)
			if testCase.installGhCLI {
				sandbox.installStub(testInstance, "gh", pickerIntegrationSignedOutGhStub)
			}
			curlLogPath := filepath.Join(sandbox.homeDirectory, pickerIntegrationCurlLogName)
			sandbox.setEnvironment(pickerIntegrationCurlLogVariable, curlLogPath)
			sandbox.installStub(testInstance, "curl", pickerIntegrationCurlStubScript)

			result := sandbox.run(testInstance, "bob\n2\n")

			require.Equal(testInstance, 0, result.ExitCode, result.Output)
			require.NotContains(testInstance, result.Output, "WARN")
			require.Contains(testInstance, result.Output, "1) bob/app\n2) bob/tool\n")
			expectedDirectory := filepath.Join(destinationRoot, "tool")
			require.Contains(testInstance, result.Output, fmt.Sprintf("CLONED: bob/tool -> %s\n", expectedDirectory))
			require.Equal(testInstance, []string{"--fail --silent --show-error --location https://api.github.com/users/bob/repos?per_page=200"}, readInvocationLog(testInstance, curlLogPath))
			require.Equal(testInstance, []string{fmt.Sprintf("clone -- git@github.com:bob/tool.git %s", expectedDirectory)}, readInvocationLog(testInstance, gitLogPath))
		})
	}
}

func TestPickerIntegrationUpdatesExistingCheckout(testInstance *testing.T) {
	sandbox := newIntegrationSandbox(testInstance)
	gitLogPath, destinationRoot := preparePickerSandbox(testInstance, sandbox)
	sandbox.installStub(testInstance, "gh", pickerIntegrationAuthenticatedGhStub)

	existingDirectory := filepath.Join(destinationRoot, "alpha")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(existingDirectory, ".git"), 0o755))

	result := sandbox.run(testInstance, "alice\n1\n")

	require.Equal(testInstance, 0, result.ExitCode, result.Output)
	require.Contains(testInstance, result.Output, fmt.Sprintf("UPDATED: alice/alpha -> %s\n", existingDirectory))
	require.Equal(testInstance, []string{"pull --ff-only"}, readInvocationLog(testInstance, gitLogPath))
}

func TestPickerIntegrationReportsDivergedCheckoutOnce(testInstance *testing.T) {
	sandbox := newIntegrationSandbox(testInstance)
	gitLogPath, destinationRoot := preparePickerSandbox(testInstance, sandbox)
	sandbox.installStub(testInstance, "git", pickerIntegrationDivergedGitStub)
	sandbox.installStub(testInstance, "gh", pickerIntegrationAuthenticatedGhStub)

	existingDirectory := filepath.Join(destinationRoot, "alpha")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(existingDirectory, ".git"), 0o755))

	result := sandbox.run(testInstance, "alice\n1\n")

	require.Equal(testInstance, 1, result.ExitCode, result.Output)
	require.Equal(testInstance, 1, strings.Count(result.Output, "fatal: Not possible to fast-forward, aborting."), result.Output)
	require.NotContains(testInstance, result.Output, "UPDATED:")
	require.Equal(testInstance, []string{"pull --ff-only"}, readInvocationLog(testInstance, gitLogPath))
}

func TestPickerIntegrationFailures(testInstance *testing.T) {
	testCases := []struct {
		name            string
		installGit      bool
		standardInput   string
		expectedMessage string
	}{
		{name: "blank_username", installGit: true, standardInput: "   \n", expectedMessage: "error: GitHub username cannot be empty"},
		{name: "selection_not_numeric", installGit: true, standardInput: "alice\nabc\n", expectedMessage: "invalid selection: not a number"},
		{name: "selection_out_of_range", installGit: true, standardInput: "alice\n3\n", expectedMessage: "out of range (1-2)"},
		{name: "git_missing", installGit: false, standardInput: "alice\n1\n", expectedMessage: "required tool \"git\" is not installed"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			sandbox := newIntegrationSandbox(testInstance)
			gitLogPath, _ := preparePickerSandbox(testInstance, sandbox)
			if !testCase.installGit {
				require.NoError(testInstance, os.Remove(filepath.Join(sandbox.stubDirectory, "git")))
			}
			sandbox.installStub(testInstance, "gh", pickerIntegrationAuthenticatedGhStub)

			result := sandbox.run(testInstance, testCase.standardInput)

			require.Equal(testInstance, 1, result.ExitCode, result.Output)
			require.Contains(testInstance, result.Output, testCase.expectedMessage)
			require.Empty(testInstance, readInvocationLog(testInstance, gitLogPath))
		})
	}
}

func TestPickerIntegrationPrintsVersion(testInstance *testing.T) {
	sandbox := newIntegrationSandbox(testInstance)

	result := sandbox.run(testInstance, "", "--version")

	require.Equal(testInstance, 0, result.ExitCode, result.Output)
	require.Regexp(testInstance, `^repopicker version: \S+\n$`, result.Output)
}

func preparePickerSandbox(testInstance *testing.T, sandbox *integrationSandbox) (string, string) {
	testInstance.Helper()

	gitLogPath := filepath.Join(sandbox.homeDirectory, pickerIntegrationGitLogName)
	destinationRoot := filepath.Join(sandbox.homeDirectory, pickerIntegrationDestinationName)
	sandbox.setEnvironment(pickerIntegrationGitLogVariable, gitLogPath)
	sandbox.setEnvironment(pickerIntegrationDestinationVariable, destinationRoot)
	sandbox.installStub(testInstance, "git", pickerIntegrationGitStubScript)
	return gitLogPath, destinationRoot
}
