package fstree

import (
	"context"
	"sync"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Stats holds aggregate counters for one scan.
type Stats struct {
	// Files is the number of leaves in the tree.
	Files int64 `json:"files"`
	// Dirs is the number of directories in the tree, the root included.
	Dirs int64 `json:"dirs"`
	// Bytes is the cumulative size of all leaves.
	Bytes int64 `json:"bytes"`
	// Errors is the number of swallowed I/O errors.
	Errors int64 `json:"errors"`
	// Elapsed is the time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Result is the outcome of a scan.
type Result struct {
	// Root is the scanned directory.
	Root *Entry
	// Stats are the counters collected while scanning.
	Stats Stats
}

// collector aggregates counters from concurrent scan workers using a mutex.
type collector struct {
	mu     sync.Mutex // Protect concurrent access
	files  int64
	dirs   int64
	bytes  int64
	errors int64
}

// addFile records a leaf of the given size.
func (c *collector) addFile(size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files++
	c.bytes += size
}

// addDir records a directory.
func (c *collector) addDir() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dirs++
}

// addError increments the error counter.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors++
}

// snapshot returns the current file and byte counters.
func (c *collector) snapshot() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.files, c.bytes
}

// finalize produces the final Stats from the collected counters.
func (c *collector) finalize(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Files:   c.files,
		Dirs:    c.dirs,
		Bytes:   c.bytes,
		Errors:  c.errors,
		Elapsed: elapsed,
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}
