package testbase

import (
	"fmt"
	"os"
	"path/filepath"
)

// workDirName is the shared working directory under the platform temp area.
// All cached containers use it; creation is idempotent.
const workDirName = "bedrock-tests"

// EnsureWorkDir creates the shared test working directory if it does not
// exist and returns its path. An already existing directory is success;
// a creation failure is fatal only if the directory is still absent.
func EnsureWorkDir() (string, error) {
	dir := filepath.Join(os.TempDir(), workDirName)
	if err := os.MkdirAll(dir, 0o777); err != nil {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			return "", fmt.Errorf("cannot create shared test working directory %s: %w", dir, err)
		}
	}
	return dir, nil
}
