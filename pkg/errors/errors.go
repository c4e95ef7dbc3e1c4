package errors

import "errors"

// Fatal conditions. Any of these aborts the whole batch.
var (
	ErrInputDirNotFound  = errors.New("input directory does not exist")
	ErrOutputDirCreation = errors.New("failed to create output directory")
	ErrInputFileOpen     = errors.New("failed to open input file")
	ErrOutputFileCreate  = errors.New("failed to create output file")
	ErrInvalidRuntime    = errors.New("invalid solver runtime")
)

// Per-file conditions. These are folded into a failed result for one input.
var (
	ErrSolverTimeout   = errors.New("solver timed out")
	ErrSolverFailed    = errors.New("solver exited with non-zero exit code")
	ErrSolverLaunch    = errors.New("solver could not be launched")
	ErrContainerFailed = errors.New("solver container failed")
)
