package utils

import (
	"errors"
	"os"

	"github.com/mini-maxit/wmc-batch/internal/logger"
)

// Attempts to close the file, and panics if something goes wrong.
func CloseFile(file *os.File) {
	err := file.Close()
	if err != nil {
		logger := logger.NewNamedLogger("utils")
		// Check if the error is a PathError
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			logger.Panicf("error during closing file %s. %s", pathErr.Path, pathErr.Error())
		}
		logger.Panicf("unexpected error during closing file: %s", err.Error())
	}
}
