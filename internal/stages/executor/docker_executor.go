package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/mini-maxit/wmc-batch/internal/docker"
	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	customErr "github.com/mini-maxit/wmc-batch/pkg/errors"
	"go.uber.org/zap"
)

type dockerExecutor struct {
	logger     *zap.SugaredLogger
	docker     docker.DockerClient
	image      string
	solverPath string
	timeout    time.Duration
	imageReady bool
}

// NewDockerExecutor runs the solver inside a fresh container per input. The solver
// binary is bind-mounted read-only, so the image only has to provide its runtime.
func NewDockerExecutor(dCli docker.DockerClient, image, solverPath string, timeout time.Duration) (Executor, error) {
	logger := logger.NewNamedLogger("docker-executor")

	absSolverPath, err := filepath.Abs(solverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve solver path %s: %w", solverPath, err)
	}
	if timeout <= 0 {
		timeout = constants.DefaultSolverTimeout
	}

	return &dockerExecutor{
		logger:     logger,
		docker:     dCli,
		image:      image,
		solverPath: absSolverPath,
		timeout:    timeout,
	}, nil
}

func (d *dockerExecutor) ExecuteCommand(ctx context.Context, cfg CommandConfig) ExecutionResult {
	start := time.Now()
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if !d.imageReady {
		if err := d.docker.EnsureImage(ctx, d.image); err != nil {
			d.logger.Errorf("Failed to ensure image %s: %s [RunID: %s]", d.image, err, cfg.RunID)
			return launchFailedResult(constants.ExitCodeUnknown, time.Since(start), err)
		}
		d.imageReady = true
	}

	containerName := SanitizeContainerName(cfg.RunID + "-" + cfg.FileName)
	containerID, err := d.docker.CreateContainer(ctx, d.buildContainerConfig(), d.buildHostConfig(), containerName)
	if err != nil {
		d.logger.Errorf("Failed to create container for %s: %s [RunID: %s]", cfg.FileName, err, cfg.RunID)
		return launchFailedResult(constants.ExitCodeUnknown, time.Since(start), err)
	}

	// Ensure container cleanup
	defer func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), constants.ContainerCleanupTimeout)
		defer cleanupCancel()
		if err := d.docker.ContainerRemove(cleanupCtx, containerID); err != nil {
			d.logger.Warnf("Failed to remove container %s: %s [RunID: %s]", containerID, err, cfg.RunID)
		}
	}()

	hijacked, err := d.docker.AttachContainer(ctx, containerID)
	if err != nil {
		d.logger.Errorf("Failed to attach to container %s: %s [RunID: %s]", containerID, err, cfg.RunID)
		return launchFailedResult(constants.ExitCodeUnknown, time.Since(start), err)
	}

	var outputErr error
	inputDone := make(chan struct{})
	outputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		if cfg.Stdin != nil {
			if _, err := io.Copy(hijacked.Conn, cfg.Stdin); err != nil {
				d.logger.Debugf("Stdin copy to %s stopped: %s [RunID: %s]", containerID, err, cfg.RunID)
			}
		}
		_ = hijacked.CloseWrite()
	}()
	go func() {
		defer close(outputDone)
		_, outputErr = stdcopy.StdCopy(cfg.Stdout, stderr, hijacked.Reader)
	}()

	// Both copiers must be finished before the caller closes its files.
	release := func() {
		hijacked.Close()
		<-inputDone
		<-outputDone
	}

	if err := d.docker.StartContainer(ctx, containerID); err != nil {
		d.logger.Errorf("Failed to start container %s: %s [RunID: %s]", containerID, err, cfg.RunID)
		release()
		return launchFailedResult(constants.ExitCodeUnknown, time.Since(start), err)
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	exitCode, err := d.docker.WaitContainer(runCtx, containerID)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			killCtx, killCancel := context.WithTimeout(context.Background(), constants.ContainerCleanupTimeout)
			defer killCancel()
			if killErr := d.docker.ContainerKill(killCtx, containerID, "SIGKILL"); killErr != nil {
				d.logger.Warnf("Failed to kill container %s: %s [RunID: %s]", containerID, killErr, cfg.RunID)
			}
			release()
			d.logger.Warnf("Solver timed out on %s [RunID: %s]", cfg.FileName, cfg.RunID)
			return timeoutResult(time.Since(start))
		}
		release()
		d.logger.Errorf("Failed to wait for container %s: %s [RunID: %s]", containerID, err, cfg.RunID)
		return launchFailedResult(constants.ExitCodeUnknown, time.Since(start),
			fmt.Errorf("%w: %w", customErr.ErrContainerFailed, err))
	}

	// Stdin may still be in flight when the solver exits; give it a bounded
	// window before the connection is torn down.
	select {
	case <-inputDone:
	case <-time.After(constants.StdinDrainTimeout):
		d.logger.Warnf("Stdin copy to %s did not finish in %s [RunID: %s]", containerID, constants.StdinDrainTimeout, cfg.RunID)
	}

	// The attach stream ends when the container exits; drain it before closing.
	<-outputDone
	if outputErr != nil {
		d.logger.Warnf("Output copy from %s ended with error: %s [RunID: %s]", containerID, outputErr, cfg.RunID)
	}
	release()

	result := exitCodeResult(int(exitCode), time.Since(start))
	if result.Err != nil {
		d.logger.Warnf("Solver failed on %s: %s [RunID: %s]", cfg.FileName, result.Err, cfg.RunID)
	}
	return result
}

func (d *dockerExecutor) containerSolverPath() string {
	return path.Join(constants.ContainerSolverDir, filepath.Base(d.solverPath))
}

func (d *dockerExecutor) buildContainerConfig() *container.Config {
	return &container.Config{
		Image:           d.image,
		Cmd:             []string{d.containerSolverPath()},
		WorkingDir:      constants.ContainerSolverDir,
		AttachStdin:     true,
		AttachStdout:    true,
		AttachStderr:    true,
		OpenStdin:       true,
		StdinOnce:       true,
		NetworkDisabled: true,
		StopSignal:      "SIGKILL",
	}
}

func (d *dockerExecutor) buildHostConfig() *container.HostConfig {
	return &container.HostConfig{
		AutoRemove:  false,
		Binds:       []string{fmt.Sprintf("%s:%s:ro", d.solverPath, d.containerSolverPath())},
		NetworkMode: container.NetworkMode("none"),
		SecurityOpt: []string{"no-new-privileges"},
		CapDrop:     []string{"ALL"},
	}
}
