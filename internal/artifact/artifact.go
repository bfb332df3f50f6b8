// Package artifact implements the temporary file through which the editor
// step hands its highlighted HTML back to nhl.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrCancelled reports that the editor finished without writing an artifact.
var ErrCancelled = errors.New("no output was produced; insertion cancelled")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewPath returns a unique artifact path in dir, or in the system temp
// directory when dir is empty. The file is not created.
func NewPath(dir string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, uuid.NewString()+".html")
}

// Read returns the UTF-8 text of the artifact at path. A missing file means
// the user cancelled and yields ErrCancelled.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to read editor output: %w", err)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// Write stores html as the artifact at path.
func Write(path, html string) error {
	if err := os.WriteFile(path, []byte(html), 0600); err != nil {
		return fmt.Errorf("failed to write editor output: %w", err)
	}
	return nil
}

// Remove deletes the artifact. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
