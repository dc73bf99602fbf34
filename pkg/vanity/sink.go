package vanity

import (
	"fmt"
	"os"
)

// DefaultOutputFile is the output file name used by the command line tool,
// relative to the working directory.
const DefaultOutputFile = "output.csv"

// OpenSink opens path for appending, creating it if absent. Existing
// records are never truncated.
func OpenSink(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return f, nil
}
