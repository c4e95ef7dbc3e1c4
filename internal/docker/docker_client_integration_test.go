//go:build integration

package docker_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/mini-maxit/wmc-batch/internal/docker"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
)

const testContainerName = "docker_client_test_container_"

func newClient(t *testing.T) docker.DockerClient {
	t.Helper()
	dc, err := docker.NewDockerClient()
	if err != nil {
		t.Fatalf("failed to create docker client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := dc.EnsureImage(ctx, constants.DefaultSolverDockerImage); err != nil {
		t.Fatalf("failed to ensure image: %v", err)
	}
	return dc
}

// TestContainerLifecycle runs cat in a container and pipes stdin through it.
func TestContainerLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dc := newClient(t)
	ctx := context.Background()

	id, err := dc.CreateContainer(ctx, &container.Config{
		Image:        constants.DefaultSolverDockerImage,
		Cmd:          []string{"cat"},
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		OpenStdin:    true,
		StdinOnce:    true,
	}, &container.HostConfig{}, testContainerName+time.Now().Format("20060102150405"))
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer func() {
		if err := dc.ContainerRemove(context.Background(), id); err != nil {
			t.Logf("failed to remove container: %v", err)
		}
	}()

	hijacked, err := dc.AttachContainer(ctx, id)
	if err != nil {
		t.Fatalf("failed to attach: %v", err)
	}
	defer hijacked.Close()

	if err := dc.StartContainer(ctx, id); err != nil {
		t.Fatalf("failed to start container: %v", err)
	}

	if _, err := io.Copy(hijacked.Conn, strings.NewReader("p cnf 1 1\n")); err != nil {
		t.Fatalf("failed to write stdin: %v", err)
	}
	_ = hijacked.CloseWrite()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, hijacked.Reader); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	code, err := dc.WaitContainer(waitCtx, id)
	if err != nil {
		t.Fatalf("failed to wait: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if stdout.String() != "p cnf 1 1\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

// TestContainerKill stops a long running container.
func TestContainerKill(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dc := newClient(t)
	ctx := context.Background()

	id, err := dc.CreateContainer(ctx, &container.Config{
		Image: constants.DefaultSolverDockerImage,
		Cmd:   []string{"sleep", "60"},
	}, &container.HostConfig{}, testContainerName+"kill_"+time.Now().Format("20060102150405"))
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer func() {
		if err := dc.ContainerRemove(context.Background(), id); err != nil {
			t.Logf("failed to remove container: %v", err)
		}
	}()

	if err := dc.StartContainer(ctx, id); err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	if err := dc.ContainerKill(ctx, id, "SIGKILL"); err != nil {
		t.Fatalf("failed to kill container: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	code, err := dc.WaitContainer(waitCtx, id)
	if err != nil {
		t.Fatalf("failed to wait: %v", err)
	}
	if code == 0 {
		t.Fatal("expected non-zero exit code after kill")
	}
}
