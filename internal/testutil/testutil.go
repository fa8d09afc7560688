package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteScript(t, dir, name, fmt.Sprintf("exit %d\n", exitCode))
}

// WriteScript writes an executable /bin/sh script with the provided body and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteFakeSudo writes a stand-in for `sudo -S` that reads one password line from stdin,
// fails like sudo does when it does not match password, and otherwise executes the
// arguments after "--".
func WriteFakeSudo(t *testing.T, dir string, name string, password string) string {
	t.Helper()
	if strings.Contains(password, "'") {
		t.Fatalf("fake sudo password must not contain single quotes")
	}
	body := fmt.Sprintf(`IFS= read -r pw || pw=""
if [ "$pw" != '%s' ]; then
  echo "sudo: 1 incorrect password attempt" >&2
  exit 1
fi
while [ $# -gt 0 ]; do
  case "$1" in
    --) shift; break ;;
    *) shift ;;
  esac
done
exec "$@"
`, password)
	return WriteScript(t, dir, name, body)
}

// WriteFakeNopasswdSudo writes a stand-in for sudo under a NOPASSWD rule: it accepts
// sudo's flags, never reads stdin, and executes the remaining arguments.
func WriteFakeNopasswdSudo(t *testing.T, dir string, name string) string {
	t.Helper()
	body := `while [ $# -gt 0 ]; do
  case "$1" in
    --) shift; break ;;
    -p) shift 2 ;;
    -*) shift ;;
    *) break ;;
  esac
done
exec "$@"
`
	return WriteScript(t, dir, name, body)
}
