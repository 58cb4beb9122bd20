// File: pkg/combine/traversal.go
package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"megasrc/pkg/ignore"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// WalkResult holds the files found under a root.
type WalkResult struct {
	Files   []string // Absolute paths in traversal order.
	Skipped error    // DirectoryReadErrors absorbed during the walk, combined with multierr.
}

// SkippedDirs returns the individual directory errors absorbed during the walk.
func (r *WalkResult) SkippedDirs() []error {
	return multierr.Errors(r.Skipped)
}

// Walk traverses root and collects every non-directory entry that is not
// under an excluded directory. Excluded directories are pruned, never read.
// Unreadable directories are logged and skipped. Root must not itself be a
// symlink; Arguments.Resolve returns the resolved path.
func Walk(root string, excluded *ignore.DirNames, logger *zap.Logger) (*WalkResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	result := &WalkResult{}
	logger.Debug("Starting directory walk",
		zap.String("root", root),
		zap.Strings("excludedDirs", excluded.Names()))

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Called either for an entry that vanished before Lstat, or a second
			// time for a directory whose ReadDir failed. Both are best-effort skips.
			logger.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			result.Skipped = multierr.Append(result.Skipped, &DirectoryReadError{Path: path, Err: err})
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			relPath, relErr := filepath.Rel(root, path)
			if relErr != nil {
				relPath = d.Name()
			}
			if matched, name := excluded.MatchesPathWithName(relPath); matched {
				logger.Debug("Pruning excluded directory",
					zap.String("directory", relPath),
					zap.String("matched", name))
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// Links to directories are neither entered nor read as files.
			// Dangling links stay in the list and fail when read.
			if target, statErr := os.Stat(path); statErr == nil && target.IsDir() {
				logger.Debug("Skipping symlink to directory", zap.String("path", path))
				return nil
			}
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		logger.Error("Error during directory walk", zap.Error(err))
		return result, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	logger.Debug("Completed directory walk",
		zap.Int("files", len(result.Files)),
		zap.Int("skippedDirs", len(result.SkippedDirs())))
	return result, nil
}
