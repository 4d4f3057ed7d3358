//go:build windows

package configs

import "os"

// WriteFileAtomic falls back to a plain write; renameio does not support Windows.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
