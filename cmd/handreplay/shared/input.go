package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadInput returns the contents of path, or of stdin when path is "-".
func ReadInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
