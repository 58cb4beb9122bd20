package combine

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// ProcessSingleFile reads and decodes the content of a single selected file.
// A file that cannot be read is a FileReadError.
func ProcessSingleFile(file CandidateFile, logger *zap.Logger) (FileContent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Reading file content", zap.String("filePath", file.Path))

	fileBytes, readErr := os.ReadFile(file.Path)
	if readErr != nil {
		logger.Error("Failed to read file",
			zap.String("filePath", file.Path),
			zap.Error(readErr))
		return FileContent{}, &FileReadError{Path: file.Path, Err: readErr}
	}

	decoded := DecodeText(fileBytes)
	if decoded.Encoding != UTF8 {
		logger.Debug("Decoded file with fallback encoding",
			zap.String("filePath", file.Path),
			zap.String("encoding", string(decoded.Encoding)))
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", file.Path),
		zap.Int("contentSizeBytes", len(fileBytes)))

	return FileContent{
		Path:     file.RelPath,
		Content:  decoded.Text,
		Encoding: decoded.Encoding,
	}, nil
}

// Concatenate reads files in order and renders the combined document:
// a header line and the content for each file, then the sentinel, joined
// with newlines. Nothing is returned if any file fails to read.
func Concatenate(files []CandidateFile, logger *zap.Logger) ([]byte, []FileContent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	contents := make([]FileContent, 0, len(files))
	for _, file := range files {
		content, err := ProcessSingleFile(file, logger)
		if err != nil {
			return nil, nil, err
		}
		contents = append(contents, content)
	}
	return []byte(Render(contents)), contents, nil
}

// Render joins the records and the sentinel with newlines.
func Render(contents []FileContent) string {
	lines := make([]string, 0, 2*len(contents)+1)
	for _, content := range contents {
		lines = append(lines, Header(content.Path), content.Content)
	}
	lines = append(lines, Sentinel)
	return strings.Join(lines, "\n")
}
