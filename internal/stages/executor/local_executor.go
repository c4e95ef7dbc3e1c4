package executor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	"go.uber.org/zap"
)

// Upper bound on waiting for I/O after the solver has been killed.
const waitDelay = 500 * time.Millisecond

type localExecutor struct {
	logger     *zap.SugaredLogger
	solverPath string
	timeout    time.Duration
}

// NewLocalExecutor runs the solver as a child process of the batch runner.
func NewLocalExecutor(solverPath string, timeout time.Duration) Executor {
	logger := logger.NewNamedLogger("local-executor")
	if timeout <= 0 {
		timeout = constants.DefaultSolverTimeout
	}
	return &localExecutor{logger: logger, solverPath: solverPath, timeout: timeout}
}

func (e *localExecutor) ExecuteCommand(ctx context.Context, cfg CommandConfig) ExecutionResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.solverPath)
	cmd.Stdin = cfg.Stdin
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.WaitDelay = waitDelay

	e.logger.Infof("Executing %s on %s [RunID: %s]", e.solverPath, cfg.FileName, cfg.RunID)
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := e.classify(ctx, err, elapsed)
	if result.Err != nil {
		e.logger.Warnf("Solver failed on %s: %s [RunID: %s]", cfg.FileName, result.Err, cfg.RunID)
	} else {
		e.logger.Infof("Solver finished %s in %s [RunID: %s]", cfg.FileName, elapsed, cfg.RunID)
	}
	return result
}

func (e *localExecutor) classify(ctx context.Context, err error, elapsed time.Duration) ExecutionResult {
	if err == nil {
		return exitCodeResult(constants.ExitCodeSuccess, elapsed)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeoutResult(elapsed)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCodeResult(exitErr.ExitCode(), elapsed)
	}

	exitCode := constants.ExitCodeUnknown
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		exitCode = constants.ExitCodeCommandNotFound
	}
	return launchFailedResult(exitCode, elapsed, err)
}
