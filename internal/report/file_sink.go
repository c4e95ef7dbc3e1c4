package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mini-maxit/wmc-batch/pkg/constants"
	"github.com/mini-maxit/wmc-batch/pkg/solution"
	"gopkg.in/yaml.v3"
)

type fileSink struct {
	path string
}

// NewFileSink writes the report as YAML to path, replacing any previous report.
func NewFileSink(path string) Sink {
	return &fileSink{path: path}
}

func (f *fileSink) String() string {
	return "file " + f.path
}

func (f *fileSink) Publish(_ context.Context, report *solution.Report) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, constants.OutputDirPerm); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	content, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return os.WriteFile(f.path, content, constants.OutputFilePerm)
}
