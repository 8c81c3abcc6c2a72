package fstree

import (
	"cmp"
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// fastScan builds the tree with fastwalk's parallel traversal.
//
// fastwalk calls the callback from multiple goroutines, so entries are linked to
// their parent under a mutex and sizes are summed once the walk is over. The
// delivery order is not stable, so children are ordered by name.
func (s *scanner) fastScan(ctx context.Context, rootPath string) *Entry {
	root := &Entry{Variant: Directory, Name: rootPath, Kind: DirectoryKind}
	s.collector.addDir()

	var mu sync.Mutex

	dirs := map[string]*Entry{rootPath: root}

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: s.opt.Workers,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.swallow(path, err)

			return nil // Silently skip errors
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		path = filepath.Clean(path)
		if path == rootPath {
			return nil
		}

		if s.excluded(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		var entry *Entry

		if d.IsDir() {
			entry = &Entry{Variant: Directory, Name: path, Kind: DirectoryKind}
			s.collector.addDir()
		} else {
			info, err := d.Info()
			if err != nil {
				s.swallow(path, err)

				return nil //nolint:nilerr // Intentionally skip errors during walk
			}

			if info.Size() < s.opt.MinSize {
				return nil
			}

			entry = NewLeaf(path, info.Size())
			s.collector.addFile(info.Size())
		}

		mu.Lock()
		defer mu.Unlock()

		if entry.IsDir() {
			dirs[path] = entry
		}

		// a directory is always delivered before its contents are read
		parent, ok := dirs[filepath.Dir(path)]
		if !ok {
			s.log.Debug("dropping entry without parent", zap.String("path", path))

			return nil
		}

		parent.Children = append(parent.Children, entry)

		return nil
	})
	if walkErr != nil && ctx.Err() == nil {
		s.swallow(rootPath, walkErr)
	}

	sumSizes(root)

	return root
}

// sumSizes orders children by name and sets every directory size to the sum of its children.
func sumSizes(dir *Entry) int64 {
	if !dir.IsDir() {
		return dir.Size
	}

	slices.SortFunc(dir.Children, func(a, b *Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	dir.Size = 0

	for _, child := range dir.Children {
		dir.Size += sumSizes(child)
	}

	return dir.Size
}
