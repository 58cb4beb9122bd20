package combine

import (
	"path/filepath"
	"sort"
	"strings"
)

// Extension returns the final dot-delimited suffix of a file name, dot included.
// Dotfiles without a further dot (".kts") and names ending in a dot have none.
func Extension(name string) string {
	name = filepath.Base(name)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Select keeps the files whose Extension is exactly one of extensions and
// returns them ordered by relative path. Paths listed in skip are dropped.
func Select(files []string, root string, extensions []string, skip ...string) []CandidateFile {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[ext] = struct{}{}
	}
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[filepath.Clean(path)] = struct{}{}
	}

	selected := make([]CandidateFile, 0, len(files))
	for _, path := range files {
		if _, ok := allowed[Extension(path)]; !ok {
			continue
		}
		if _, ok := skipped[filepath.Clean(path)]; ok {
			continue
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		selected = append(selected, CandidateFile{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
		})
	}

	SortByPath(selected)
	return selected
}

// SortByPath orders files ascending by slash-separated relative path, byte-wise,
// so the order never depends on the order the filesystem returned entries in.
func SortByPath(files []CandidateFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
}

// SortedByPath reports whether files are in the order SortByPath produces.
func SortedByPath(files []CandidateFile) bool {
	return sort.SliceIsSorted(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
}
