package combine

import "fmt"

// Markers written around each record of the combined file.
const (
	headerFormat = "--- %s ---"
	Sentinel     = "--- END OF FILE ---"
)

// CandidateFile is a selected file and its slash-separated path relative to the root.
type CandidateFile struct {
	Path    string // Absolute path on disk.
	RelPath string // Path relative to the root, used in the header and for ordering.
}

// FileContent holds the content of a file after processing.
type FileContent struct {
	Path     string   // The relative file path
	Content  string   // The decoded content of the file
	Encoding Encoding // The encoding the content was decoded with
}

// Summary reports the outcome of a run.
type Summary struct {
	Files     int    // Records written to the output.
	Output    string // Absolute path of the output file.
	Skipped   int    // Directories that could not be read.
	Fallbacks int    // Files decoded with the fallback encoding.
}

// Header returns the delimiter line that precedes a file's content.
func Header(relPath string) string {
	return fmt.Sprintf(headerFormat, relPath)
}
