package picker

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repopicker/internal/catalog"
	"github.com/temirov/repopicker/internal/dependencies"
	"github.com/temirov/repopicker/internal/execshell"
	"github.com/temirov/repopicker/internal/filesystem"
	"github.com/temirov/repopicker/internal/githubapi"
	"github.com/temirov/repopicker/internal/githubcli"
	"github.com/temirov/repopicker/internal/utils"
	pathutils "github.com/temirov/repopicker/internal/utils/path"
	"github.com/temirov/repopicker/internal/workspace"
)

const (
	commandUseConstant              = "repopicker"
	commandShortDescriptionConstant = "Pick one of a GitHub account's repositories and clone or update it"
	commandLongDescriptionConstant  = "repopicker lists a GitHub account's repositories (through an authenticated gh when available, otherwise the public API), asks which one to use, and clones it over SSH or fast-forwards an existing working copy."
	summaryLineTemplateConstant     = "%s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the picker command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	Executor                     dependencies.ShellExecutor
	ToolLocator                  execshell.ToolLocator
	FileSystem                   filesystem.FileSystem
	HomeExpander                 *pathutils.HomeExpander
}

// Build constructs the picker command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	shellExecutor, executorError := dependencies.ResolveShellExecutor(builder.Executor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	toolLocator := dependencies.ResolveToolLocator(builder.ToolLocator)
	output := utils.NewFlushingWriter(command.OutOrStdout())

	service, serviceError := builder.buildService(logger, shellExecutor, toolLocator, configuration, command.InOrStdin(), output)
	if serviceError != nil {
		return serviceError
	}

	result, runError := service.Run(command.Context(), Options{Host: configuration.Host})
	if runError != nil {
		return runError
	}

	_, printError := fmt.Fprintf(output, summaryLineTemplateConstant, result.Summary())
	return printError
}

func (builder *CommandBuilder) buildService(logger *zap.Logger, shellExecutor dependencies.ShellExecutor, toolLocator execshell.ToolLocator, configuration CommandConfiguration, input io.Reader, output io.Writer) (*Service, error) {
	githubCLIClient, cliClientError := githubcli.NewClient(shellExecutor)
	if cliClientError != nil {
		return nil, cliClientError
	}
	githubAPIClient, apiClientError := githubapi.NewClient(shellExecutor, configuration.APIBaseURL)
	if apiClientError != nil {
		return nil, apiClientError
	}

	prober, proberError := catalog.NewCapabilityProbe(catalog.ProbeDependencies{
		Logger:                logger,
		ToolLocator:           toolLocator,
		AuthenticationChecker: githubCLIClient,
	})
	if proberError != nil {
		return nil, proberError
	}

	enumerator, enumeratorError := catalog.NewEnumerator(catalog.EnumeratorDependencies{
		Logger:           logger,
		ToolLocator:      toolLocator,
		PrivilegedLister: githubCLIClient,
		PublicLister:     githubAPIClient,
	}, configuration.Limit)
	if enumeratorError != nil {
		return nil, enumeratorError
	}

	materializer, materializerError := workspace.NewService(workspace.Dependencies{
		Logger:      logger,
		GitExecutor: shellExecutor,
		FileSystem:  dependencies.ResolveFileSystem(builder.FileSystem),
	}, workspace.Options{
		Host:            configuration.Host,
		DestinationRoot: builder.resolveHomeExpander().Expand(configuration.Destination),
		Protocol:        configuration.Protocol,
	})
	if materializerError != nil {
		return nil, materializerError
	}

	return NewService(Dependencies{
		Logger:       logger,
		ToolLocator:  toolLocator,
		Prober:       prober,
		Enumerator:   enumerator,
		Materializer: materializer,
		Prompter:     NewIOLinePrompter(input, output),
		MenuOutput:   output,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}
