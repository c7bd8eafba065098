// Package batch discovers input documents and runs the extraction pipeline
// across them, tolerating individual failures.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docutab/docutab/internal/common"
)

const pdfExt = ".pdf"

// Discover resolves an input path into the sorted list of PDF documents for
// one run. A single file is a one-document batch. A directory is enumerated
// non-recursively (immediate children) or recursively; recursive walks skip
// any subtree whose directory name appears in ignoreDirs (exact,
// case-sensitive match against the path component). Zero matches is a
// discovery failure, distinct from any per-document failure.
func Discover(root string, recursive bool, ignoreDirs []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, common.NewAppError("DISCOVERY", fmt.Sprintf("input path %q does not exist", root), common.ErrDiscovery)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	ignored := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		if d != "" {
			ignored[d] = struct{}{}
		}
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != root {
					if _, skip := ignored[d.Name()]; skip {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if isPDF(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, common.NewAppError("DISCOVERY", fmt.Sprintf("walk %q: %v", root, err), common.ErrDiscovery)
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, common.NewAppError("DISCOVERY", fmt.Sprintf("read directory %q: %v", root, err), common.ErrDiscovery)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			p := filepath.Join(root, e.Name())
			if isPDF(p) {
				paths = append(paths, p)
			}
		}
	}

	if len(paths) == 0 {
		return nil, common.NewAppError("DISCOVERY", fmt.Sprintf("no PDF documents found under %q", root), common.ErrDiscovery)
	}

	// Reproducible task ordering, independent of filesystem enumeration order.
	sort.Strings(paths)
	return paths, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pdfExt)
}
