// File: pkg/combine/helpers.go
package combine

import (
	"bufio"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// WriteCombinedFile replaces outputPath with data. The content goes to a
// temporary file next to the target first and is renamed into place, so a
// failed write leaves any previous output untouched.
func WriteCombinedFile(outputPath string, data []byte, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing combined content to output file", zap.String("combinedFile", outputPath))

	dir := filepath.Dir(outputPath)
	if err := ensureDirectory(dir, logger); err != nil {
		return &OutputWriteError{Path: outputPath, Op: "mkdir", Err: err}
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return &OutputWriteError{Path: outputPath, Op: "create", Err: err}
	}
	tempPath := tempFile.Name()

	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	writer := bufio.NewWriter(tempFile)
	if _, err = writer.Write(data); err != nil {
		logger.Error("Failed to write combined file", zap.String("file", tempPath), zap.Error(err))
		return &OutputWriteError{Path: outputPath, Op: "write", Err: err}
	}
	if err = writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", tempPath), zap.Error(err))
		return &OutputWriteError{Path: outputPath, Op: "write", Err: err}
	}
	if err = tempFile.Sync(); err != nil {
		return &OutputWriteError{Path: outputPath, Op: "sync", Err: err}
	}
	if err = tempFile.Close(); err != nil {
		return &OutputWriteError{Path: outputPath, Op: "close", Err: err}
	}
	if err = os.Chmod(tempPath, outputMode(outputPath)); err != nil {
		return &OutputWriteError{Path: outputPath, Op: "chmod", Err: err}
	}
	if err = os.Rename(tempPath, outputPath); err != nil {
		logger.Error("Failed to replace output file", zap.String("file", outputPath), zap.Error(err))
		return &OutputWriteError{Path: outputPath, Op: "rename", Err: err}
	}

	logger.Debug("Successfully wrote file", zap.String("path", outputPath), zap.Int("bytes", len(data)))
	return nil
}

// outputMode keeps the permissions of an existing output file; new files get 0644.
func outputMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0644
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
