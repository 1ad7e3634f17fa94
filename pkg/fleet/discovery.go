package fleet

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/waynelloyd/system-updater/pkg/errors"
)

// composeFileNames are the recognized stack-definition file names, in
// the order they are looked up within a directory.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// excludedSegments mark paths that are never valid user-intended
// targets: container-runtime internal storage and temp/cache trees.
var excludedSegments = []string{
	"/.local/share/containers/storage/overlay/",
	"/tmp/",
	"/.cache/",
	"/var/tmp/",
}

// searchSubdirs are the conventional locations under the home
// directory searched during discovery, alongside home itself.
var searchSubdirs = []string{
	"docker",
	"projects",
	"dev",
	"development",
}

// Excluded reports whether a path contains a segment that disqualifies
// it as a fleet target.
func Excluded(path string) bool {
	for _, segment := range excludedSegments {
		if strings.Contains(path, segment) {
			return true
		}
	}
	return false
}

// Discover searches the home directory and its conventional
// subdirectories recursively for compose files and returns the sorted,
// de-duplicated set of containing directories, with excluded paths
// dropped. Unreadable subtrees are skipped.
func (m *Manager) Discover() []string {
	roots := []string{m.home}
	for _, sub := range searchSubdirs {
		roots = append(roots, filepath.Join(m.home, sub))
	}

	seen := make(map[string]bool)
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				m.log.Debug().
					Err(errors.Wrap(err, errors.ErrDiscovery, "unreadable path skipped")).
					Str("path", path).
					Msg("Discovery skipped subtree")
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			for _, name := range composeFileNames {
				if d.Name() == name {
					seen[filepath.Dir(path)] = true
					break
				}
			}
			return nil
		})
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		if Excluded(dir) {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	m.log.Debug().Int("count", len(dirs)).Msg("Compose discovery finished")
	return dirs
}

// composeFileIn returns the first recognized compose file name present
// in dir.
func composeFileIn(dir string) (string, bool) {
	for _, name := range composeFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name, true
		}
	}
	return "", false
}
