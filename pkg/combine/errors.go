package combine

import "fmt"

// DirectoryReadError reports a directory that could not be enumerated.
// The walker absorbs these and keeps going.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }

// FileReadError reports a selected file that could not be read. It aborts the run.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// OutputWriteError reports a failure while writing the combined file.
type OutputWriteError struct {
	Path string
	Op   string // create, write, sync, close, chmod, rename, mkdir
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to %s output %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
