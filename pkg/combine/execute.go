// File: pkg/combine/execute.go
package combine

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RunCombine walks the root, selects files by extension, concatenates them
// and replaces the output file. The output is only written when every
// selected file was read.
func RunCombine(args *Arguments, logger *zap.Logger) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	resolved, err := args.Resolve()
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Info("Starting combination process",
		zap.String("root", resolved.Root),
		zap.String("output", resolved.Output),
		zap.Strings("extensions", resolved.Extensions),
		zap.Strings("excludedDirs", resolved.ExcludeDirs.Names()))

	walked, err := Walk(resolved.Root, resolved.ExcludeDirs, logger)
	if err != nil {
		logger.Error("Failed to collect files", zap.Error(err))
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	skipped := walked.SkippedDirs()
	if len(skipped) > 0 {
		logger.Warn("Some directories could not be read and were skipped",
			zap.Int("skippedDirs", len(skipped)))
	}

	selected := Select(walked.Files, resolved.Root, resolved.Extensions, resolved.Output)
	logger.Debug("Selected files",
		zap.Int("walked", len(walked.Files)),
		zap.Int("selected", len(selected)))

	data, contents, err := Concatenate(selected, logger)
	if err != nil {
		logger.Error("Failed to process files", zap.Error(err))
		return nil, fmt.Errorf("failed to process files: %w", err)
	}

	if err := WriteCombinedFile(resolved.Output, data, logger); err != nil {
		logger.Error("Failed to write combined file", zap.String("combinedFile", resolved.Output), zap.Error(err))
		return nil, fmt.Errorf("failed to write combined file: %w", err)
	}

	summary := &Summary{
		Files:   len(contents),
		Output:  resolved.Output,
		Skipped: len(skipped),
	}
	for _, content := range contents {
		if content.Encoding != UTF8 {
			summary.Fallbacks++
		}
	}

	logger.Info("Successfully combined files",
		zap.String("outputFile", summary.Output),
		zap.Int("totalFiles", summary.Files),
		zap.Int("fallbackDecoded", summary.Fallbacks),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}
