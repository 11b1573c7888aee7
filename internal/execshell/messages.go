package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
	endOfOptionsMarkerConstant              = "--"
)

const (
	gitCloneSubcommandNameConstant         = "clone"
	gitPullSubcommandNameConstant          = "pull"
	githubAPISubcommandNameConstant        = "api"
	githubUserRepositoriesEndpointConstant = "user/repos"
	githubAuthSubcommandNameConstant       = "auth"
	githubStatusSubcommandNameConstant     = "status"
	githubHostnameFlagConstant             = "--hostname"
	githubMethodFlagConstant               = "-X"
	githubFieldFlagConstant                = "-f"
)

const (
	gitCloneStartTemplateConstant                    = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                  = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                  = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant         = "Unable to clone %s into %s: %s"
	gitPullStartTemplateConstant                     = "Fast-forwarding %s"
	gitPullSuccessTemplateConstant                   = "Fast-forwarded %s"
	gitPullFailureTemplateConstant                   = "Failed to fast-forward %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant          = "Unable to fast-forward %s: %s"
	githubRepoListStartTemplateConstant              = "Listing repositories reachable by the GitHub CLI session"
	githubRepoListSuccessTemplateConstant            = "Listed repositories reachable by the GitHub CLI session"
	githubRepoListFailureTemplateConstant            = "Failed to list repositories reachable by the GitHub CLI session (exit code %d%s)"
	githubRepoListExecutionFailureTemplateConstant   = "Unable to list repositories reachable by the GitHub CLI session: %s"
	githubAuthStatusStartTemplateConstant            = "Checking GitHub CLI authentication for %s"
	githubAuthStatusSuccessTemplateConstant          = "GitHub CLI is authenticated for %s"
	githubAuthStatusFailureTemplateConstant          = "GitHub CLI is not authenticated for %s (exit code %d%s)"
	githubAuthStatusExecutionFailureTemplateConstant = "Unable to check GitHub CLI authentication for %s: %s"
	curlStartTemplateConstant                        = "Requesting %s"
	curlSuccessTemplateConstant                      = "Received response from %s"
	curlFailureTemplateConstant                      = "Request to %s failed (exit code %d%s)"
	curlExecutionFailureTemplateConstant             = "Unable to request %s: %s"
)

// stageTemplates holds one message template per lifecycle stage for a recognised command.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var (
	gitCloneTemplates = stageTemplates{
		start:            gitCloneStartTemplateConstant,
		success:          gitCloneSuccessTemplateConstant,
		failure:          gitCloneFailureTemplateConstant,
		executionFailure: gitCloneExecutionFailureTemplateConstant,
	}
	gitPullTemplates = stageTemplates{
		start:            gitPullStartTemplateConstant,
		success:          gitPullSuccessTemplateConstant,
		failure:          gitPullFailureTemplateConstant,
		executionFailure: gitPullExecutionFailureTemplateConstant,
	}
	githubRepoListTemplates = stageTemplates{
		start:            githubRepoListStartTemplateConstant,
		success:          githubRepoListSuccessTemplateConstant,
		failure:          githubRepoListFailureTemplateConstant,
		executionFailure: githubRepoListExecutionFailureTemplateConstant,
	}
	githubAuthStatusTemplates = stageTemplates{
		start:            githubAuthStatusStartTemplateConstant,
		success:          githubAuthStatusSuccessTemplateConstant,
		failure:          githubAuthStatusFailureTemplateConstant,
		executionFailure: githubAuthStatusExecutionFailureTemplateConstant,
	}
	curlTemplates = stageTemplates{
		start:            curlStartTemplateConstant,
		success:          curlSuccessTemplateConstant,
		failure:          curlFailureTemplateConstant,
		executionFailure: curlExecutionFailureTemplateConstant,
	}
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	case CommandCurl:
		return formatter.describeCurlMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	switch formatter.argumentAtIndex(arguments, 0) {
	case gitCloneSubcommandNameConstant:
		positional := formatter.positionalArguments(arguments[1:])
		source := formatter.ensureValue(formatter.argumentAtIndex(positional, 0))
		destination := formatter.ensureValue(formatter.argumentAtIndex(positional, 1))
		return formatter.render(gitCloneTemplates, stage, result, failure, source, destination)
	case gitPullSubcommandNameConstant:
		return formatter.render(gitPullTemplates, stage, result, failure, formatter.describeWorkingDirectory(command))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	primaryArgument := formatter.argumentAtIndex(arguments, 0)
	secondaryArgument := formatter.argumentAtIndex(arguments, 1)

	switch {
	case primaryArgument == githubAPISubcommandNameConstant && formatter.argumentAtIndex(formatter.positionalArguments(arguments[1:]), 0) == githubUserRepositoriesEndpointConstant:
		return formatter.render(githubRepoListTemplates, stage, result, failure)
	case primaryArgument == githubAuthSubcommandNameConstant && secondaryArgument == githubStatusSubcommandNameConstant:
		host := formatter.ensureValue(findFlagValue(arguments, githubHostnameFlagConstant))
		return formatter.render(githubAuthStatusTemplates, stage, result, failure, host)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeCurlMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	target := formatter.ensureValue(arguments[len(arguments)-1])
	return formatter.render(curlTemplates, stage, result, failure, target)
}

func (formatter CommandMessageFormatter) render(templates stageTemplates, stage messageStage, result ExecutionResult, failure error, subjects ...string) string {
	values := make([]any, 0, len(subjects)+2)
	for _, subject := range subjects {
		values = append(values, subject)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, values...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		values = append(values, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, values...)
	default:
		values = append(values, formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, values...)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)

	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return commandLabel + fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return ""
	}
	return strings.TrimSpace(arguments[index])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

// positionalArguments drops flags and the values of the gh flags known to take one.
// Everything after the end-of-options marker is positional.
func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		switch argument {
		case endOfOptionsMarkerConstant:
			return append(positional, arguments[index+1:]...)
		case githubMethodFlagConstant, githubFieldFlagConstant, githubHostnameFlagConstant:
			index++
			continue
		}
		if strings.HasPrefix(argument, flagPrefixConstant) {
			continue
		}
		positional = append(positional, argument)
	}
	return positional
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments)-1; index++ {
		if arguments[index] == flag {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return ""
}
