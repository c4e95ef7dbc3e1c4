package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/internal/stages/executor"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
	customErr "github.com/mini-maxit/wmc-batch/pkg/errors"
	"github.com/mini-maxit/wmc-batch/pkg/solution"
	"github.com/mini-maxit/wmc-batch/utils"
	"go.uber.org/zap"
)

type BatchRunner interface {
	// RunAll runs the solver over every input in sorted order and returns the report.
	// Per-file solver failures end up in the report; only filesystem errors abort the batch.
	RunAll(ctx context.Context) (*solution.Report, error)
	// RunOne runs the solver on a single input and classifies the run.
	RunOne(ctx context.Context, fileName string) (solution.Result, error)
	GetStatus(fileName string) solution.Status
	GetRunID() string
}

type batchRunner struct {
	inputDir  string
	outputDir string
	executor  executor.Executor
	progress  io.Writer
	runID     string
	statuses  map[string]solution.Status
	logger    *zap.SugaredLogger
}

// NewBatchRunner wires a runner over inputDir and outputDir. Progress lines (one
// file name per line) go to progress, or to stdout when it is nil.
func NewBatchRunner(inputDir, outputDir string, executor executor.Executor, progress io.Writer) BatchRunner {
	logger := logger.NewNamedLogger("batch-runner")
	if progress == nil {
		progress = os.Stdout
	}

	return &batchRunner{
		inputDir:  inputDir,
		outputDir: outputDir,
		executor:  executor,
		progress:  progress,
		statuses:  make(map[string]solution.Status),
		logger:    logger,
	}
}

func (br *batchRunner) GetRunID() string {
	return br.runID
}

func (br *batchRunner) GetStatus(fileName string) solution.Status {
	status, ok := br.statuses[fileName]
	if !ok {
		return solution.Pending
	}
	return status
}

func (br *batchRunner) RunAll(ctx context.Context) (*solution.Report, error) {
	br.runID = uuid.NewString()
	br.logger.Infof("Starting batch over %s [RunID: %s]", br.inputDir, br.runID)

	if err := EnsureOutputDir(br.outputDir); err != nil {
		br.logger.Errorf("Failed to prepare output directory: %s [RunID: %s]", err, br.runID)
		return nil, err
	}

	fileNames, err := ListInputs(br.inputDir)
	if err != nil {
		br.logger.Errorf("Failed to list inputs: %s [RunID: %s]", err, br.runID)
		return nil, err
	}
	br.logger.Infof("Found %d input files [RunID: %s]", len(fileNames), br.runID)

	br.statuses = make(map[string]solution.Status, len(fileNames))
	for _, fileName := range fileNames {
		br.statuses[fileName] = solution.Pending
	}

	report := solution.NewReport(br.runID, time.Now())
	for _, fileName := range fileNames {
		fmt.Fprintln(br.progress, fileName)

		result, err := br.RunOne(ctx, fileName)
		if err != nil {
			br.logger.Errorf("Aborting batch on %s: %s [RunID: %s]", fileName, err, br.runID)
			return nil, err
		}
		report.Add(result)
	}
	report.FinishedAt = time.Now()

	br.logger.Infof("Batch finished: %d successes, %d failures [RunID: %s]",
		len(report.Successes), len(report.Failures), br.runID)
	return report, nil
}

func (br *batchRunner) RunOne(ctx context.Context, fileName string) (solution.Result, error) {
	inputPath := filepath.Join(br.inputDir, fileName)
	outputPath := filepath.Join(br.outputDir, fileName)

	stdin, err := os.Open(inputPath)
	if err != nil {
		return solution.Result{}, fmt.Errorf("%w: %s: %w", customErr.ErrInputFileOpen, inputPath, err)
	}
	defer utils.CloseFile(stdin)

	stdout, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.OutputFilePerm)
	if err != nil {
		return solution.Result{}, fmt.Errorf("%w: %s: %w", customErr.ErrOutputFileCreate, outputPath, err)
	}

	br.updateStatus(fileName, solution.Running)
	execResult := br.executor.ExecuteCommand(ctx, executor.CommandConfig{
		RunID:    br.runID,
		FileName: fileName,
		Stdin:    stdin,
		Stdout:   stdout,
	})

	if err := stdout.Close(); err != nil {
		return solution.Result{}, fmt.Errorf("failed to close output file %s: %w", outputPath, err)
	}

	result := solution.Result{
		FileName: fileName,
		Status:   execResult.Reason.Status(),
		Reason:   execResult.Reason,
		ExitCode: execResult.ExitCode,
		Duration: execResult.Duration,
	}
	if execResult.Err != nil {
		result.Message = execResult.Err.Error()
	}
	br.updateStatus(fileName, result.Status)

	br.logger.Infof("%s finished with status %s (%s) [RunID: %s]", fileName, result.Status, result.Reason, br.runID)
	return result, nil
}

// updateStatus moves a file along Pending -> Running -> Success|Failure.
func (br *batchRunner) updateStatus(fileName string, status solution.Status) {
	br.logger.Debugf("%s: %s -> %s [RunID: %s]", fileName, br.GetStatus(fileName), status, br.runID)
	br.statuses[fileName] = status
}
