package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/idelchi/diskmap/internal/fstree"
	"github.com/idelchi/diskmap/internal/logging"
	"github.com/idelchi/diskmap/internal/treemap"
)

func logic(ctx context.Context, s settings, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level := s.LogLevel
	if s.Debug {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{Level: level, Format: "console"})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // Nothing to do about a failed flush

	if s.Path == "" {
		if s.Path, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	// validate path exists and is accessible
	if statInfo, err := os.Stat(s.Path); err != nil {
		return fmt.Errorf("accessing path %q: %w", s.Path, err)
	} else if !statInfo.IsDir() {
		return fmt.Errorf("path %q is not a directory", s.Path)
	}

	enableProgress := s.Output == "table" &&
		!s.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	res, err := fstree.Scan(ctx, s.Path, fstree.Options{
		Workers:  s.Workers,
		Walker:   s.Walker,
		Excludes: s.Exclude,
		MinSize:  s.MinBytes,
		Logger:   logger,
	}, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	logger.Debug("scan finished",
		zap.Int64("files", res.Stats.Files),
		zap.Int64("dirs", res.Stats.Dirs),
		zap.Int64("errors", res.Stats.Errors),
		zap.Duration("elapsed", res.Stats.Elapsed))

	depth := s.Depth
	if s.Unlimited {
		depth = treemap.UnlimitedDepth
	}

	rect := treemap.Rect{Size: res.Root.Size, DX: s.Width, DY: s.Height}

	placement, err := treemap.Arranger{BoxRatio: s.BoxRatio}.Arrange(res.Root, rect, depth)
	if err != nil {
		return fmt.Errorf("computing layout: %w", err)
	}

	report := newReport(res, placement, s)

	switch strings.ToLower(s.Output) {
	case "json":
		return PrintJSON(report, out)
	case "csv":
		return PrintCSV(report, out)
	case "table":
		return PrintTable(report, out)
	default:
		return fmt.Errorf("unknown output format: %s", s.Output)
	}
}

// newReport gathers everything the formatters print.
func newReport(res *fstree.Result, placement *treemap.Placement, s settings) *Report {
	root := res.Root.Name
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	depth := strconv.Itoa(s.Depth)
	if s.Unlimited {
		depth = "all"
	}

	return &Report{
		Title:      fmt.Sprintf("Disk Usage for %s looking %s folders deep. Time used: %v", root, depth, res.Stats.Elapsed),
		Root:       root,
		Width:      s.Width,
		Height:     s.Height,
		Depth:      depth,
		TotalBytes: res.Root.Size,
		Stats:      res.Stats,
		Boxes:      placement.Records(),
	}
}
