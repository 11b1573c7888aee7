package tests

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationCommandTimeout           = 10 * time.Second
	integrationStubDirectoryName        = "bin"
	integrationWorkingDirectoryName     = "work"
	integrationHomeDirectoryName        = "home"
	integrationEnvironmentPrefix        = "REPOPICKER_"
	integrationStubExecutablePermission = 0o755
)

// integrationRun captures one invocation of the built binary.
type integrationRun struct {
	Output   string
	ExitCode int
}

// integrationSandbox isolates PATH, HOME, and the working directory for one invocation.
type integrationSandbox struct {
	stubDirectory    string
	workingDirectory string
	homeDirectory    string
	environment      []string
}

func newIntegrationSandbox(testInstance *testing.T) *integrationSandbox {
	testInstance.Helper()

	rootDirectory := testInstance.TempDir()
	sandbox := &integrationSandbox{
		stubDirectory:    filepath.Join(rootDirectory, integrationStubDirectoryName),
		workingDirectory: filepath.Join(rootDirectory, integrationWorkingDirectoryName),
		homeDirectory:    filepath.Join(rootDirectory, integrationHomeDirectoryName),
	}
	for _, directory := range []string{sandbox.stubDirectory, sandbox.workingDirectory, sandbox.homeDirectory} {
		require.NoError(testInstance, os.MkdirAll(directory, 0o755))
	}

	for _, assignment := range os.Environ() {
		if strings.HasPrefix(assignment, integrationEnvironmentPrefix) || strings.HasPrefix(assignment, "PATH=") || strings.HasPrefix(assignment, "HOME=") || strings.HasPrefix(assignment, "XDG_CONFIG_HOME=") {
			continue
		}
		sandbox.environment = append(sandbox.environment, assignment)
	}
	sandbox.environment = append(sandbox.environment,
		"PATH="+sandbox.stubDirectory,
		"HOME="+sandbox.homeDirectory,
		"XDG_CONFIG_HOME="+filepath.Join(sandbox.homeDirectory, ".config"),
	)
	return sandbox
}

func (sandbox *integrationSandbox) installStub(testInstance *testing.T, executableName string, script string) {
	testInstance.Helper()
	stubPath := filepath.Join(sandbox.stubDirectory, executableName)
	require.NoError(testInstance, os.WriteFile(stubPath, []byte(script), integrationStubExecutablePermission))
}

func (sandbox *integrationSandbox) setEnvironment(key string, value string) {
	sandbox.environment = append(sandbox.environment, key+"="+value)
}

func (sandbox *integrationSandbox) run(testInstance *testing.T, standardInput string, arguments ...string) integrationRun {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, repopickerBinaryPath, arguments...)
	command.Dir = sandbox.workingDirectory
	command.Env = sandbox.environment
	command.Stdin = strings.NewReader(standardInput)

	var combinedOutput bytes.Buffer
	command.Stdout = &combinedOutput
	command.Stderr = &combinedOutput

	runError := command.Run()
	result := integrationRun{Output: combinedOutput.String()}
	if runError != nil {
		exitError := &exec.ExitError{}
		require.ErrorAs(testInstance, runError, &exitError, result.Output)
		result.ExitCode = exitError.ExitCode()
	}
	return result
}

func readInvocationLog(testInstance *testing.T, logPath string) []string {
	testInstance.Helper()

	contentBytes, readError := os.ReadFile(logPath)
	if os.IsNotExist(readError) {
		return nil
	}
	require.NoError(testInstance, readError)
	return strings.Split(strings.TrimSpace(string(contentBytes)), "\n")
}
