package executor_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mini-maxit/wmc-batch/internal/config"
	exec "github.com/mini-maxit/wmc-batch/internal/stages/executor"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	pkgerrors "github.com/mini-maxit/wmc-batch/pkg/errors"
	"github.com/mini-maxit/wmc-batch/pkg/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSolver writes an executable shell script standing in for the solver.
func writeSolver(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestSanitizeContainerName(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"abc123", "wmc-abc123"},
		{"run-1-a.cnf", "wmc-run-1-a.cnf"},
		{"A.B-C_D", "wmc-A.B-C_D"},
		{"", "wmc-untitled"},
		{"bad name!", "wmc-bad-name-"},
		{"dir/file.cnf", "wmc-dir-file.cnf"},
	}

	for _, c := range cases {
		got := exec.SanitizeContainerName(c.in)
		if got != c.out {
			t.Fatalf("SanitizeContainerName(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestLocalExecutor_Success(t *testing.T) {
	solver := writeSolver(t, "cat")
	ex := exec.NewLocalExecutor(solver, 5*time.Second)

	var stdout bytes.Buffer
	result := ex.ExecuteCommand(context.Background(), exec.CommandConfig{
		RunID:    "run-1",
		FileName: "a.cnf",
		Stdin:    strings.NewReader("p cnf 1 1\n1 0\n"),
		Stdout:   &stdout,
	})

	require.NoError(t, result.Err)
	assert.True(t, result.Succeeded())
	assert.Equal(t, solution.ReasonNone, result.Reason)
	assert.Equal(t, constants.ExitCodeSuccess, result.ExitCode)
	assert.Equal(t, "p cnf 1 1\n1 0\n", stdout.String())
}

func TestLocalExecutor_NonZeroExit(t *testing.T) {
	solver := writeSolver(t, "echo partial\nexit 3")
	ex := exec.NewLocalExecutor(solver, 5*time.Second)

	var stdout bytes.Buffer
	result := ex.ExecuteCommand(context.Background(), exec.CommandConfig{
		RunID:    "run-1",
		FileName: "b.cnf",
		Stdin:    strings.NewReader(""),
		Stdout:   &stdout,
	})

	assert.False(t, result.Succeeded())
	assert.Equal(t, solution.ReasonNonZeroExit, result.Reason)
	assert.Equal(t, 3, result.ExitCode)
	assert.True(t, errors.Is(result.Err, pkgerrors.ErrSolverFailed))
	assert.Equal(t, "partial\n", stdout.String())
}

func TestLocalExecutor_Timeout(t *testing.T) {
	solver := writeSolver(t, "echo started\nexec sleep 10")
	ex := exec.NewLocalExecutor(solver, 200*time.Millisecond)

	var stdout bytes.Buffer
	start := time.Now()
	result := ex.ExecuteCommand(context.Background(), exec.CommandConfig{
		RunID:    "run-1",
		FileName: "slow.cnf",
		Stdin:    strings.NewReader(""),
		Stdout:   &stdout,
	})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, result.Succeeded())
	assert.Equal(t, solution.ReasonTimeout, result.Reason)
	assert.Equal(t, constants.ExitCodeTimeout, result.ExitCode)
	assert.True(t, errors.Is(result.Err, pkgerrors.ErrSolverTimeout))
	assert.Equal(t, "started\n", stdout.String())
}

func TestLocalExecutor_MissingSolver(t *testing.T) {
	ex := exec.NewLocalExecutor(filepath.Join(t.TempDir(), "missing"), time.Second)

	var stdout bytes.Buffer
	result := ex.ExecuteCommand(context.Background(), exec.CommandConfig{
		RunID:    "run-1",
		FileName: "a.cnf",
		Stdin:    strings.NewReader(""),
		Stdout:   &stdout,
	})

	assert.Equal(t, solution.ReasonLaunchFailed, result.Reason)
	assert.Equal(t, constants.ExitCodeCommandNotFound, result.ExitCode)
	assert.True(t, errors.Is(result.Err, pkgerrors.ErrSolverLaunch))
	assert.Empty(t, stdout.String())
}

func TestLocalExecutor_NotExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho 1\n"), 0o644))
	ex := exec.NewLocalExecutor(path, time.Second)

	result := ex.ExecuteCommand(context.Background(), exec.CommandConfig{
		FileName: "a.cnf",
		Stdin:    strings.NewReader(""),
		Stdout:   &bytes.Buffer{},
	})

	assert.Equal(t, solution.ReasonLaunchFailed, result.Reason)
	assert.True(t, errors.Is(result.Err, pkgerrors.ErrSolverLaunch))
}

func TestLocalExecutor_StderrIsNotCaptured(t *testing.T) {
	solver := writeSolver(t, "echo diagnostics >&2\necho 10")
	ex := exec.NewLocalExecutor(solver, 5*time.Second)

	var stdout, stderr bytes.Buffer
	result := ex.ExecuteCommand(context.Background(), exec.CommandConfig{
		FileName: "a.cnf",
		Stdin:    strings.NewReader(""),
		Stdout:   &stdout,
		Stderr:   &stderr,
	})

	require.NoError(t, result.Err)
	assert.Equal(t, "10\n", stdout.String())
	assert.Equal(t, "diagnostics\n", stderr.String())
}

func TestNewExecutor_Runtimes(t *testing.T) {
	ex, err := exec.NewExecutor(&config.Config{
		SolverPath:    "../addmc",
		SolverTimeout: time.Second,
		SolverRuntime: constants.RuntimeLocal,
	})
	require.NoError(t, err)
	assert.NotNil(t, ex)

	_, err = exec.NewExecutor(&config.Config{SolverRuntime: "podman"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidRuntime))
}
