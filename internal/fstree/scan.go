package fstree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Walker names accepted by Options.Walker.
const (
	// WalkerNative reads directories in enumeration order and keeps that order.
	WalkerNative = "native"
	// WalkerFastwalk uses fastwalk's parallel traversal and orders children by name.
	WalkerFastwalk = "fastwalk"
)

// Options configures a scan.
type Options struct {
	// Workers bounds the number of goroutines scanning sibling subtrees (<=1 = sequential).
	Workers int
	// Walker selects the traversal strategy, WalkerNative when empty.
	Walker string
	// Excludes contains regex patterns matched against slash-separated paths.
	Excludes []string
	// MinSize drops leaves smaller than this many bytes.
	MinSize int64
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug output about swallowed errors and skipped paths.
	Logger *zap.Logger
}

// scanner holds the state shared by all directories of one scan.
type scanner struct {
	opt       Options
	log       *zap.Logger
	excludes  []*regexp.Regexp
	collector *collector
	sem       *semaphore.Weighted
}

// ScanTree scans rootPath sequentially and returns its size-annotated tree.
// It never fails: an unreadable or missing root yields an empty directory.
func ScanTree(rootPath string) *Entry {
	res, err := Scan(context.Background(), rootPath, Options{}, nil)
	if err != nil {
		return NewDirectory(filepath.Clean(rootPath), nil)
	}

	return res.Root
}

// Scan walks the tree at rootPath and returns it together with scan statistics.
//
// I/O errors never abort the scan; the affected directory keeps the children read
// before the failure. Symlinks are leaves sized by Lstat and are never followed.
// An error is returned only for invalid options or when ctx is cancelled.
// Progress updates are sent to progressHook if provided.
func Scan(ctx context.Context, rootPath string, opt Options, progressHook func(int64, int64)) (*Result, error) {
	if rootPath == "" {
		rootPath = "."
	}

	rootPath = filepath.Clean(rootPath)

	if opt.Walker == "" {
		opt.Walker = WalkerNative
	}

	if opt.Walker != WalkerNative && opt.Walker != WalkerFastwalk {
		return nil, fmt.Errorf("unknown walker %q: must be one of %v", opt.Walker, []string{WalkerNative, WalkerFastwalk})
	}

	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	excludes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludes = append(excludes, re)
	}

	s := &scanner{
		opt:       opt,
		log:       log,
		excludes:  excludes,
		collector: &collector{},
	}

	if opt.Workers > 1 {
		// the calling goroutine is a worker too
		s.sem = semaphore.NewWeighted(int64(opt.Workers - 1))
	}

	// Create child context to ensure progress reporter cleanup
	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(walkCtx, s.collector, progressHook, opt.ProgressInterval)

	log.Debug("scanning",
		zap.String("root", rootPath),
		zap.String("walker", opt.Walker),
		zap.Int("workers", opt.Workers),
		zap.Int("excludes", len(excludes)))

	start := time.Now()

	var root *Entry

	if opt.Walker == WalkerFastwalk {
		root = s.fastScan(walkCtx, rootPath)
	} else {
		root = s.scanDir(walkCtx, rootPath)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scanning %q: %w", rootPath, err)
	}

	return &Result{
		Root:  root,
		Stats: s.collector.finalize(time.Since(start)),
	}, nil
}

// scanDir builds the directory entry for path. Subdirectories are handed to
// another goroutine when a worker slot is free and scanned inline otherwise,
// so nested scans never wait on a slot.
func (s *scanner) scanDir(ctx context.Context, path string) *Entry {
	s.collector.addDir()

	if ctx.Err() != nil {
		return NewDirectory(path, nil)
	}

	dir, err := os.Open(path)
	if err != nil {
		s.swallow(path, err)

		return NewDirectory(path, nil)
	}
	defer dir.Close()

	// ReadDir returns the entries read so far together with the error
	dirEntries, readErr := dir.ReadDir(-1)

	slots := make([]*Entry, len(dirEntries))

	var wg sync.WaitGroup

	for i, d := range dirEntries { //nolint:varnamelen // d is standard for DirEntry
		childPath := filepath.Join(path, d.Name())

		if s.excluded(childPath, d.IsDir()) {
			continue
		}

		// DirEntry types come from Lstat, so a symlink to a directory is not a directory here
		if d.IsDir() {
			if s.sem != nil && s.sem.TryAcquire(1) {
				wg.Add(1)

				go func() {
					defer wg.Done()
					defer s.sem.Release(1)

					slots[i] = s.scanDir(ctx, childPath)
				}()

				continue
			}

			slots[i] = s.scanDir(ctx, childPath)

			continue
		}

		info, err := d.Info()
		if err != nil {
			// the remaining entries of this directory are dropped
			s.swallow(childPath, err)

			break
		}

		if info.Size() < s.opt.MinSize {
			continue
		}

		s.collector.addFile(info.Size())
		slots[i] = NewLeaf(childPath, info.Size())
	}

	wg.Wait()

	if readErr != nil {
		s.swallow(path, readErr)
	}

	children := slices.DeleteFunc(slots, func(e *Entry) bool { return e == nil })

	return NewDirectory(path, children)
}

// excluded checks if path matches any exclusion regex.
func (s *scanner) excluded(path string, isDir bool) bool {
	if len(s.excludes) == 0 {
		return false
	}

	fPath := filepath.ToSlash(path)

	for _, re := range s.excludes {
		if re.MatchString(fPath) {
			if isDir {
				s.log.Debug("excluding directory", zap.String("path", fPath), zap.Stringer("pattern", re))
			} else {
				s.log.Debug("excluding file", zap.String("path", fPath), zap.Stringer("pattern", re))
			}

			return true
		}
	}

	return false
}

// swallow records an I/O error that truncates the current directory.
func (s *scanner) swallow(path string, err error) {
	s.collector.addError()
	s.log.Debug("error accessing path", zap.String("path", path), zap.Error(err))
}
