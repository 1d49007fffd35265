package download

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FilenameFor returns the part of the URL after the last slash.
func FilenameFor(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// pathWithinDir joins filename onto dir and rejects names that would land
// outside dir ("..", absolute paths, separators).
func pathWithinDir(dir, filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	if strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	cleanDir := filepath.Clean(dir)
	target := filepath.Join(cleanDir, filename)

	if filepath.Dir(target) != cleanDir {
		return "", fmt.Errorf("access denied: %q resolves outside %s", filename, dir)
	}

	return target, nil
}
