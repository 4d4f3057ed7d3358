//go:build !windows

package configs

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes data to a temporary file, fsyncs it and renames it
// over path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
