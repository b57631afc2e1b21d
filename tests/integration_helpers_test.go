package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	integrationGoExecutableConstant    = "go"
	integrationBinaryNameConstant      = "pagepush-integration"
	integrationBuildSubcommandConstant = "build"
	integrationOutputFlagConstant      = "-o"
	integrationBuildTargetConstant     = "."
	integrationBuildTimeout            = 120 * time.Second
)

type integrationCommandOptions struct {
	PathVariable         string
	EnvironmentOverrides map[string]string
}

func buildIntegrationEnvironment(options integrationCommandOptions) []string {
	environment := append([]string{}, os.Environ()...)
	if len(options.PathVariable) > 0 {
		environment = append(environment, "PATH="+options.PathVariable)
	}
	for environmentKey, environmentValue := range options.EnvironmentOverrides {
		environment = append(environment, environmentKey+"="+environmentValue)
	}
	return environment
}

func executeIntegrationCommand(repositoryRoot string, options integrationCommandOptions, timeout time.Duration, arguments []string) (string, error) {
	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, integrationGoExecutableConstant, arguments...)
	command.Dir = repositoryRoot
	command.Env = buildIntegrationEnvironment(options)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func runIntegrationCommand(testInstance *testing.T, repositoryRoot string, options integrationCommandOptions, timeout time.Duration, arguments []string) string {
	testInstance.Helper()

	outputText, runError := executeIntegrationCommand(repositoryRoot, options, timeout, arguments)
	requireNoError(testInstance, runError, outputText)
	return outputText
}

func buildIntegrationBinary(testInstance *testing.T, repositoryRoot string) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)
	buildArguments := []string{integrationBuildSubcommandConstant, integrationOutputFlagConstant, binaryPath, integrationBuildTargetConstant}
	outputText, buildError := executeIntegrationCommand(repositoryRoot, integrationCommandOptions{}, integrationBuildTimeout, buildArguments)
	requireNoError(testInstance, buildError, outputText)
	return binaryPath
}

func runBinaryIntegrationCommand(testInstance *testing.T, binaryPath string, workingDirectory string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = buildIntegrationEnvironment(integrationCommandOptions{EnvironmentOverrides: environmentOverrides})

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func runFailingBinaryIntegrationCommand(testInstance *testing.T, binaryPath string, workingDirectory string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) string {
	testInstance.Helper()

	outputText, runError := runBinaryIntegrationCommand(testInstance, binaryPath, workingDirectory, environmentOverrides, timeout, arguments)
	if runError == nil {
		testInstance.Fatalf("command unexpectedly succeeded:\n%s", outputText)
	}
	return outputText
}

func filterStructuredOutput(rawOutput string) string {
	lines := strings.Split(rawOutput, "\n")
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			continue
		}
		filtered = append(filtered, line)
	}
	if len(filtered) == 0 {
		return ""
	}
	return strings.Join(filtered, "\n") + "\n"
}

func requireNoError(testInstance *testing.T, err error, output string) {
	testInstance.Helper()
	if err != nil {
		testInstance.Fatalf("command failed: %v\n%s", err, output)
	}
}
