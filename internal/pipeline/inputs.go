package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mini-maxit/wmc-batch/pkg/constants"
	customErr "github.com/mini-maxit/wmc-batch/pkg/errors"
)

// ListInputs returns the names of the regular files directly inside inputDir,
// sorted lexicographically so every run processes inputs in the same order.
// Symlinks count when they resolve to a regular file.
func ListInputs(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", customErr.ErrInputDirNotFound, inputDir)
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isRegularFile(inputDir, entry) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

func isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// EnsureOutputDir creates outputDir and any missing parents. An existing directory is not an error.
func EnsureOutputDir(outputDir string) error {
	if err := os.MkdirAll(outputDir, constants.OutputDirPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", customErr.ErrOutputDirCreation, outputDir, err)
	}
	return nil
}
