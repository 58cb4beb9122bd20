// File: pkg/combine/config.go
package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"megasrc/pkg/ignore"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the artifact file name, relative to the root.
const DefaultOutput = "mega_sources.txt"

// DefaultExtensions are the file suffixes selected when none are configured.
var DefaultExtensions = []string{".kt", ".xml", ".kts"}

// Arguments holds the configuration options for the file combining process.
type Arguments struct {
	Root        string   `yaml:"root"`         // Directory tree to scan. Empty means the current working directory.
	Output      string   `yaml:"output"`       // Destination of the combined file; relative paths are resolved against Root.
	ExcludeDirs []string `yaml:"exclude_dirs"` // Directory names pruned anywhere in the tree.
	Extensions  []string `yaml:"extensions"`   // File suffixes to select, including the leading dot.
}

// Resolved is Arguments with absolute paths, ready for a run.
type Resolved struct {
	Root        string
	Output      string
	ExcludeDirs *ignore.DirNames
	Extensions  []string
}

// DefaultArguments returns the built-in configuration.
func DefaultArguments() *Arguments {
	return &Arguments{
		Root:        "",
		Output:      DefaultOutput,
		ExcludeDirs: append([]string(nil), ignore.DefaultDirNames...),
		Extensions:  append([]string(nil), DefaultExtensions...),
	}
}

// LoadConfigFile merges a YAML config file over args.
// Keys absent from the file keep their current values.
func LoadConfigFile(path string, args *Arguments) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileArgs Arguments
	if err := yaml.Unmarshal(data, &fileArgs); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fileArgs.Root != "" {
		// A relative root in a config file is relative to the file, not the caller.
		root := fileArgs.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(path), root)
		}
		args.Root = root
	}
	if fileArgs.Output != "" {
		args.Output = fileArgs.Output
	}
	if fileArgs.ExcludeDirs != nil {
		args.ExcludeDirs = fileArgs.ExcludeDirs
	}
	if fileArgs.Extensions != nil {
		args.Extensions = fileArgs.Extensions
	}
	return nil
}

// Validate checks the configuration values.
func (a *Arguments) Validate() error {
	if strings.TrimSpace(a.Output) == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if len(a.Extensions) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	for _, ext := range a.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension %q: must start with '.' and name a suffix", ext)
		}
		if strings.ContainsAny(ext, `/\`) || strings.Count(ext, ".") != 1 {
			return fmt.Errorf("invalid extension %q: must be a single suffix such as .kt", ext)
		}
	}
	for _, name := range a.ExcludeDirs {
		if name == "" || name == "." || name == ".." {
			return fmt.Errorf("invalid excluded directory name %q", name)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid excluded directory name %q: must be a name, not a path", name)
		}
	}
	return nil
}

// Resolve validates the arguments and turns them into absolute paths.
func (a *Arguments) Resolve() (*Resolved, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	root := a.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of root %s: %w", a.Root, err)
	}
	// The walk does not enter a symlinked root, so follow it here. A root
	// that cannot be resolved is left as is for Walk to report.
	if resolvedRoot, evalErr := filepath.EvalSymlinks(root); evalErr == nil {
		root = resolvedRoot
	}

	output := a.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}
	// Select compares the output against walked paths, which are symlink-free.
	if dir, evalErr := filepath.EvalSymlinks(filepath.Dir(output)); evalErr == nil {
		output = filepath.Join(dir, filepath.Base(output))
	}

	return &Resolved{
		Root:        root,
		Output:      filepath.Clean(output),
		ExcludeDirs: ignore.NewDirNames(a.ExcludeDirs...),
		Extensions:  append([]string(nil), a.Extensions...),
	}, nil
}
