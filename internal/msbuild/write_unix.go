//go:build !windows

package msbuild

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes data through a renameio pending file: temp file,
// fsync, then rename over path. The existing file mode is kept.
func writeFileAtomic(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("failed to create pending file for %s: %w", path, err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
