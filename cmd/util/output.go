package util

import (
	"fmt"
	"io"
	"os"
)

// WriteOutput writes content to path, or to stdout when path is empty or
// "stdout"
func WriteOutput(path, content string, stdout io.Writer) error {
	if path == "" || path == "stdout" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output to %s: %w", path, err)
	}
	return nil
}
