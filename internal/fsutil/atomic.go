// Package fsutil holds small filesystem helpers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/launch/internal/messages"
)

var (
	createTemp = os.CreateTemp
	rename     = os.Rename
)

// WriteFileAtomic writes data to path by writing a temp file in the same
// directory and renaming it over path. The parent directory is created with
// mode 0o755 when missing.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.FSCreateDirFmt, dir, err)
	}
	tmp, err := createTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FSCreateTempFmt, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FSWriteTempFmt, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FSWriteTempFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.FSWriteTempFmt, path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf(messages.FSChmodFmt, path, err)
	}
	if err := rename(tmpName, path); err != nil {
		return fmt.Errorf(messages.FSRenameFmt, path, err)
	}
	committed = true
	return nil
}
