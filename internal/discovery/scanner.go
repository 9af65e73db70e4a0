package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner finds record files below a results directory
type Scanner struct {
	suffixes []string
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner matching the given file suffixes and
// skipping the given directory names
func NewScanner(suffixes, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{suffixes: suffixes, skipDirs: skipMap}
}

// Scan returns the record files under root in lexical order
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("results path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("results path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.matches(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan results path: %w", err)
	}

	return files, nil
}

func (s *Scanner) matches(name string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
