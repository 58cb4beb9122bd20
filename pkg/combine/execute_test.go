package combine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInRoot(t *testing.T, root string) (*Summary, string) {
	t.Helper()
	args := DefaultArguments()
	args.Root = root
	summary, err := RunCombine(args, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, DefaultOutput))
	require.NoError(t, err)
	return summary, string(data)
}

var headerLine = regexp.MustCompile(`(?m)^--- (.+) ---$`)

func headers(output string) []string {
	var out []string
	for _, m := range headerLine.FindAllStringSubmatch(output, -1) {
		if m[0] == Sentinel {
			continue
		}
		out = append(out, m[1])
	}
	return out
}

func TestRunCombineDefaultsScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.kt":        "fun a() {}\n",
		"sub/b.xml":   "<b/>\n",
		".git/c.kt":   "fun c() {}\n",
		"build/d.kts": "plugins {}\n",
		"e.txt":       "notes\n",
	})

	summary, output := runInRoot(t, root)

	want := "--- a.kt ---\nfun a() {}\n\n--- sub/b.xml ---\n<b/>\n\n--- END OF FILE ---"
	assert.Equal(t, want, output)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, filepath.Join(realPath(t, root), DefaultOutput), summary.Output)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Fallbacks)
}

func TestRunCombineEmptyTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.md": "# nothing selected"})

	summary, output := runInRoot(t, root)

	assert.Equal(t, Sentinel, output)
	assert.Equal(t, 0, summary.Files)
}

func TestRunCombineIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"z/last.kt":           "z",
		"a/first.kt":          "a",
		"m/mid.xml":           "<m/>",
		"a-b/dash.kts":        "d",
		"a/deeper/nested.kts": "n",
	})

	_, first := runInRoot(t, root)
	_, second := runInRoot(t, root)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a-b/dash.kts", "a/deeper/nested.kts", "a/first.kt", "m/mid.xml", "z/last.kt"}, headers(first))
}

func TestRunCombineExtensionsAreExactAndCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Keep.kt":           "k",
		"Upper.KT":          "u",
		"script.kts":        "s",
		"layout.xml":        "x",
		"layout.xml.bak":    "b",
		"kt":                "no dot",
		"noext":             "n",
		".kts":              "dotfile",
		"docs/readme.kt.md": "md",
	})

	_, output := runInRoot(t, root)
	assert.Equal(t, []string{"Keep.kt", "layout.xml", "script.kts"}, headers(output))
}

func TestRunCombineExcludesDescendantsOfExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app/src/Main.kt":                 "main",
		"app/build/generated/R.kt":        "EXCLUDED build",
		"lib/.gradle/caches/x/y/z.kts":    "EXCLUDED gradle",
		"lib/out/production/classes.xml":  "EXCLUDED out",
		".idea/workspace.xml":             "EXCLUDED idea",
		"app/src/main/res/layout/act.xml": "layout",
	})

	_, output := runInRoot(t, root)
	assert.Equal(t, []string{"app/src/Main.kt", "app/src/main/res/layout/act.xml"}, headers(output))
	assert.NotContains(t, output, "EXCLUDED")
}

func TestRunCombineDecodesInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"latin.kt": "// caf\xe9\n",
		"utf8.kt":  "// café\n",
	})

	summary, output := runInRoot(t, root)

	assert.Equal(t, "--- latin.kt ---\n// café\n\n--- utf8.kt ---\n// café\n\n--- END OF FILE ---", output)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Fallbacks)
}

func TestRunCombineOverwritesAndNeverIncludesItsOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.kt": "a"})

	args := DefaultArguments()
	args.Root = root
	args.Output = "combined.kt"
	require.NoError(t, os.WriteFile(filepath.Join(root, "combined.kt"), []byte(strings.Repeat("stale ", 100)), 0644))

	for i := 0; i < 2; i++ {
		summary, err := RunCombine(args, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Files)
	}

	data, err := os.ReadFile(filepath.Join(root, "combined.kt"))
	require.NoError(t, err)
	assert.Equal(t, "--- a.kt ---\na\n--- END OF FILE ---", string(data))
}

func TestRunCombineOutputOutsideRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.kt": "a"})
	out := filepath.Join(t.TempDir(), "reports", "all.txt")

	args := DefaultArguments()
	args.Root = root
	args.Output = out

	summary, err := RunCombine(args, nil)
	require.NoError(t, err)
	assert.Equal(t, out, summary.Output)
	assert.FileExists(t, out)
	assert.NoFileExists(t, filepath.Join(root, DefaultOutput))
}

func TestConcatenateFileDeletedAfterSelection(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.kt": "a",
		"b.kt": "b",
	})

	result, err := Walk(root, nil, nil)
	require.NoError(t, err)
	selected := Select(result.Files, root, DefaultExtensions)
	require.Len(t, selected, 2)

	require.NoError(t, os.Remove(filepath.Join(root, "b.kt")))

	data, contents, err := Concatenate(selected, nil)
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Nil(t, contents)

	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, filepath.Join(root, "b.kt"), readErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRunCombineUnreadableSelectedFileKeepsPreviousOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.kt": "a"})
	// A dangling symlink is listed by the walk but cannot be read.
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.kt"), filepath.Join(root, "link.kt")))

	outPath := filepath.Join(root, DefaultOutput)
	require.NoError(t, os.WriteFile(outPath, []byte("previous artifact"), 0644))

	args := DefaultArguments()
	args.Root = root
	summary, err := RunCombine(args, nil)
	require.Error(t, err)
	assert.Nil(t, summary)

	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, filepath.Join(realPath(t, root), "link.kt"), readErr.Path)
	assert.Contains(t, err.Error(), "link.kt")

	data, readFileErr := os.ReadFile(outPath)
	require.NoError(t, readFileErr)
	assert.Equal(t, "previous artifact", string(data))
}

func TestRunCombineInvalidArguments(t *testing.T) {
	args := DefaultArguments()
	args.Root = t.TempDir()
	args.Extensions = []string{"kt"}

	_, err := RunCombine(args, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	args = DefaultArguments()
	args.Root = filepath.Join(t.TempDir(), "missing")
	_, err = RunCombine(args, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRunCombineFollowsSymlinkedRoot(t *testing.T) {
	realRoot := t.TempDir()
	writeTree(t, realRoot, map[string]string{
		"a.kt":      "a",
		"sub/b.xml": "<b/>",
	})
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(realRoot, link))

	args := DefaultArguments()
	args.Root = link
	summary, err := RunCombine(args, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Files)

	data, err := os.ReadFile(filepath.Join(realRoot, DefaultOutput))
	require.NoError(t, err)
	assert.Equal(t, "--- a.kt ---\na\n--- sub/b.xml ---\n<b/>\n--- END OF FILE ---", string(data))
}

func TestRunCombineIgnoresSymlinkToDirectoryWithSelectedExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.kt": "a"})
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(root, "shared.kt")))

	summary, output := runInRoot(t, root)
	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, []string{"a.kt"}, headers(output))
}
