package executor

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/mini-maxit/wmc-batch/internal/config"
	"github.com/mini-maxit/wmc-batch/internal/docker"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	customErr "github.com/mini-maxit/wmc-batch/pkg/errors"
	"github.com/mini-maxit/wmc-batch/pkg/solution"
)

var containerNameRegex = regexp.MustCompile("[^a-zA-Z0-9_.-]")

// CommandConfig describes a single solver invocation. Stdin and Stdout are owned by
// the caller and stay open until ExecuteCommand returns. A nil Stderr inherits the
// console.
type CommandConfig struct {
	RunID    string
	FileName string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

type ExecutionResult struct {
	ExitCode int
	Reason   solution.FailureReason
	Duration time.Duration
	Err      error
}

// Succeeded is true only when the solver exited with status code 0.
func (er ExecutionResult) Succeeded() bool {
	return er.Reason == solution.ReasonNone
}

func (er ExecutionResult) String() string {
	return fmt.Sprintf("ExecutionResult{Reason: %s, ExitCode: %d, Duration: %s}", er.Reason, er.ExitCode, er.Duration)
}

type Executor interface {
	ExecuteCommand(ctx context.Context, cfg CommandConfig) ExecutionResult
}

// NewExecutor returns the executor for the configured solver runtime.
func NewExecutor(cfg *config.Config) (Executor, error) {
	switch cfg.SolverRuntime {
	case constants.RuntimeLocal, "":
		return NewLocalExecutor(cfg.SolverPath, cfg.SolverTimeout), nil
	case constants.RuntimeDocker:
		dCli, err := docker.NewDockerClient()
		if err != nil {
			return nil, fmt.Errorf("failed to create docker client: %w", err)
		}
		return NewDockerExecutor(dCli, cfg.SolverDockerImage, cfg.SolverPath, cfg.SolverTimeout)
	default:
		return nil, fmt.Errorf("%w: %q", customErr.ErrInvalidRuntime, cfg.SolverRuntime)
	}
}

func SanitizeContainerName(raw string) string {
	cleaned := containerNameRegex.ReplaceAllString(raw, "-")
	if cleaned == "" {
		cleaned = "untitled"
	}
	return constants.ContainerNamePrefix + cleaned
}

func timeoutResult(elapsed time.Duration) ExecutionResult {
	return ExecutionResult{
		ExitCode: constants.ExitCodeTimeout,
		Reason:   solution.ReasonTimeout,
		Duration: elapsed,
		Err:      customErr.ErrSolverTimeout,
	}
}

func exitCodeResult(exitCode int, elapsed time.Duration) ExecutionResult {
	if exitCode == constants.ExitCodeSuccess {
		return ExecutionResult{
			ExitCode: exitCode,
			Reason:   solution.ReasonNone,
			Duration: elapsed,
		}
	}
	return ExecutionResult{
		ExitCode: exitCode,
		Reason:   solution.ReasonNonZeroExit,
		Duration: elapsed,
		Err:      fmt.Errorf("%w: %d", customErr.ErrSolverFailed, exitCode),
	}
}

func launchFailedResult(exitCode int, elapsed time.Duration, err error) ExecutionResult {
	return ExecutionResult{
		ExitCode: exitCode,
		Reason:   solution.ReasonLaunchFailed,
		Duration: elapsed,
		Err:      fmt.Errorf("%w: %w", customErr.ErrSolverLaunch, err),
	}
}
