package workspace_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/catalog"
	"github.com/temirov/repopicker/internal/execshell"
	"github.com/temirov/repopicker/internal/filesystem"
	"github.com/temirov/repopicker/internal/gitrepo"
	"github.com/temirov/repopicker/internal/workspace"
)

const (
	testRepositoryConstant            = catalog.RepositoryIdentifier("alice/m")
	testDivergedStandardErrorConstant = "fatal: Not possible to fast-forward, aborting."
)

type recordingGitExecutor struct {
	recordedDetails []execshell.CommandDetails
	err             error
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.err != nil {
		return execshell.ExecutionResult{}, executor.err
	}
	return execshell.ExecutionResult{}, nil
}

type failingStatFileSystem struct {
	filesystem.OSFileSystem
	err error
}

func (fileSystem failingStatFileSystem) Stat(string) (fs.FileInfo, error) {
	return nil, fileSystem.err
}

func createGitMetadata(testInstance *testing.T, root string, name string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(root, name, ".git"), 0o755))
}

func TestMaterialize(testInstance *testing.T) {
	testCases := []struct {
		name            string
		prepare         func(testInstance *testing.T, root string)
		executorError   error
		expectedAction  workspace.Action
		expectedCommand func(root string) execshell.CommandDetails
		verifyError     func(testInstance *testing.T, materializeError error)
	}{
		{
			name:           "clone_when_directory_missing",
			prepare:        func(*testing.T, string) {},
			expectedAction: workspace.ActionCloned,
			expectedCommand: func(root string) execshell.CommandDetails {
				return execshell.CommandDetails{
					Arguments:            []string{"clone", "--", "git@github.com:alice/m.git", filepath.Join(root, "m")},
					EnvironmentVariables: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
				}
			},
		},
		{
			name: "clone_when_directory_lacks_metadata",
			prepare: func(testInstance *testing.T, root string) {
				require.NoError(testInstance, os.MkdirAll(filepath.Join(root, "m"), 0o755))
			},
			expectedAction: workspace.ActionCloned,
			expectedCommand: func(root string) execshell.CommandDetails {
				return execshell.CommandDetails{
					Arguments:            []string{"clone", "--", "git@github.com:alice/m.git", filepath.Join(root, "m")},
					EnvironmentVariables: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
				}
			},
		},
		{
			name: "update_when_metadata_present",
			prepare: func(testInstance *testing.T, root string) {
				createGitMetadata(testInstance, root, "m")
			},
			expectedAction: workspace.ActionUpdated,
			expectedCommand: func(root string) execshell.CommandDetails {
				return execshell.CommandDetails{
					Arguments:            []string{"pull", "--ff-only"},
					WorkingDirectory:     filepath.Join(root, "m"),
					EnvironmentVariables: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
				}
			},
		},
		{
			name: "diverged_update_fails",
			prepare: func(testInstance *testing.T, root string) {
				createGitMetadata(testInstance, root, "m")
			},
			executorError: execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"pull", "--ff-only"}}},
				Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: testDivergedStandardErrorConstant},
			},
			expectedCommand: func(root string) execshell.CommandDetails {
				return execshell.CommandDetails{
					Arguments:            []string{"pull", "--ff-only"},
					WorkingDirectory:     filepath.Join(root, "m"),
					EnvironmentVariables: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
				}
			},
			verifyError: func(testInstance *testing.T, materializeError error) {
				var failedError execshell.CommandFailedError
				require.ErrorAs(testInstance, materializeError, &failedError)
				require.Contains(testInstance, materializeError.Error(), testDivergedStandardErrorConstant)
				require.Contains(testInstance, materializeError.Error(), "failed to update alice/m")
			},
		},
		{
			name:          "clone_failure",
			prepare:       func(*testing.T, string) {},
			executorError: execshell.CommandFailedError{Command: execshell.ShellCommand{Name: execshell.CommandGit}, Result: execshell.ExecutionResult{ExitCode: 128}},
			expectedCommand: func(root string) execshell.CommandDetails {
				return execshell.CommandDetails{
					Arguments:            []string{"clone", "--", "git@github.com:alice/m.git", filepath.Join(root, "m")},
					EnvironmentVariables: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
				}
			},
			verifyError: func(testInstance *testing.T, materializeError error) {
				require.Contains(testInstance, materializeError.Error(), "failed to clone alice/m")
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			root := testInstance.TempDir()
			testCase.prepare(testInstance, root)

			executor := &recordingGitExecutor{err: testCase.executorError}
			service, creationError := workspace.NewService(workspace.Dependencies{
				Logger:      zap.NewNop(),
				GitExecutor: executor,
				FileSystem:  filesystem.OSFileSystem{},
			}, workspace.Options{DestinationRoot: root})
			require.NoError(testInstance, creationError)

			result, materializeError := service.Materialize(context.Background(), testRepositoryConstant)
			require.Len(testInstance, executor.recordedDetails, 1)
			require.Equal(testInstance, testCase.expectedCommand(root), executor.recordedDetails[0])

			if testCase.verifyError != nil {
				require.Error(testInstance, materializeError)
				testCase.verifyError(testInstance, materializeError)
				return
			}
			require.NoError(testInstance, materializeError)
			require.Equal(testInstance, workspace.Result{
				Repository: testRepositoryConstant,
				Directory:  filepath.Join(root, "m"),
				Action:     testCase.expectedAction,
			}, result)
		})
	}
}

func TestMaterializeCreatesDestinationRoot(testInstance *testing.T) {
	root := filepath.Join(testInstance.TempDir(), "src", "github")
	executor := &recordingGitExecutor{}
	service, creationError := workspace.NewService(workspace.Dependencies{
		Logger:      zap.NewNop(),
		GitExecutor: executor,
		FileSystem:  filesystem.OSFileSystem{},
	}, workspace.Options{Host: "github.example.com", DestinationRoot: root})
	require.NoError(testInstance, creationError)

	result, materializeError := service.Materialize(context.Background(), testRepositoryConstant)
	require.NoError(testInstance, materializeError)
	require.Equal(testInstance, workspace.ActionCloned, result.Action)
	require.DirExists(testInstance, root)
	require.Equal(testInstance, "git@github.example.com:alice/m.git", executor.recordedDetails[0].Arguments[2])
}

func TestMaterializeClonesOverHTTPS(testInstance *testing.T) {
	root := testInstance.TempDir()
	executor := &recordingGitExecutor{}
	service, creationError := workspace.NewService(workspace.Dependencies{
		Logger:      zap.NewNop(),
		GitExecutor: executor,
		FileSystem:  filesystem.OSFileSystem{},
	}, workspace.Options{DestinationRoot: root, Protocol: gitrepo.RemoteProtocolHTTPS})
	require.NoError(testInstance, creationError)

	result, materializeError := service.Materialize(context.Background(), testRepositoryConstant)
	require.NoError(testInstance, materializeError)
	require.Equal(testInstance, workspace.ActionCloned, result.Action)
	require.Equal(testInstance,
		[]string{"clone", "--", "https://github.com/alice/m.git", filepath.Join(root, "m")},
		executor.recordedDetails[0].Arguments)
}

func TestMaterializeRejectsUnsupportedProtocol(testInstance *testing.T) {
	executor := &recordingGitExecutor{}
	service, creationError := workspace.NewService(workspace.Dependencies{
		Logger:      zap.NewNop(),
		GitExecutor: executor,
		FileSystem:  filesystem.OSFileSystem{},
	}, workspace.Options{DestinationRoot: testInstance.TempDir(), Protocol: gitrepo.RemoteProtocol("ftp")})
	require.NoError(testInstance, creationError)

	_, materializeError := service.Materialize(context.Background(), testRepositoryConstant)
	require.ErrorAs(testInstance, materializeError, &gitrepo.UnsupportedProtocolError{})
	require.Empty(testInstance, executor.recordedDetails)
}

func TestMaterializeReportsInspectionFailure(testInstance *testing.T) {
	executor := &recordingGitExecutor{}
	service, creationError := workspace.NewService(workspace.Dependencies{
		Logger:      zap.NewNop(),
		GitExecutor: executor,
		FileSystem:  failingStatFileSystem{err: fs.ErrPermission},
	}, workspace.Options{})
	require.NoError(testInstance, creationError)

	_, materializeError := service.Materialize(context.Background(), testRepositoryConstant)
	require.ErrorIs(testInstance, materializeError, fs.ErrPermission)
	require.Empty(testInstance, executor.recordedDetails)
}

func TestNewServiceValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		dependencies  workspace.Dependencies
		expectedError error
	}{
		{name: "logger", dependencies: workspace.Dependencies{GitExecutor: &recordingGitExecutor{}, FileSystem: filesystem.OSFileSystem{}}, expectedError: workspace.ErrLoggerNotConfigured},
		{name: "git_executor", dependencies: workspace.Dependencies{Logger: zap.NewNop(), FileSystem: filesystem.OSFileSystem{}}, expectedError: workspace.ErrGitExecutorNotConfigured},
		{name: "filesystem", dependencies: workspace.Dependencies{Logger: zap.NewNop(), GitExecutor: &recordingGitExecutor{}}, expectedError: workspace.ErrFileSystemNotConfigured},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, creationError := workspace.NewService(testCase.dependencies, workspace.Options{})
			require.Nil(testInstance, service)
			require.True(testInstance, errors.Is(creationError, testCase.expectedError))
		})
	}
}

func TestResultSummary(testInstance *testing.T) {
	require.Equal(testInstance, "CLONED: alice/m -> m", workspace.Result{Repository: testRepositoryConstant, Directory: "m", Action: workspace.ActionCloned}.Summary())
	require.Equal(testInstance, "UPDATED: alice/m -> m", workspace.Result{Repository: testRepositoryConstant, Directory: "m", Action: workspace.ActionUpdated}.Summary())
}
