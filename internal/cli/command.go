package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/diskmap/internal/config"
	"github.com/idelchi/diskmap/internal/fstree"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flagValues holds the raw flag values before they are merged with the config file.
type flagValues struct {
	configPath string
	scan       string
	width      int
	height     int
	depth      int
	unlimited  bool
	workers    int
	walker     string
	boxRatio   float64
	excludes   []string
	minSize    string
	output     string
	debug      bool
}

// settings is the merged configuration a run works with.
type settings struct {
	config.Config

	Path     string
	MinBytes int64
	Debug    bool
}

var allowedOutputs = []string{"table", "json", "csv"}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var flags flagValues

	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "diskmap [flags] [path]",
		Short: "Map disk usage of a directory onto a rectangle",
		Long: heredoc.Doc(`
			diskmap scans a directory tree and divides a rectangle among its files and
			folders, each box proportional to the size on disk.

			Boxes are cut as full-width or full-height strips, largest entries first.
			Folders deeper than --depth are shown as a single box; use --unlimited to
			give every file its own box.

			Settings are read from the config file first (YAML, see --config);
			flags given on the command line take precedence.

			Positional Arguments:
			  path                   Directory to scan. Defaults to --scan, then the current directory.
		`),
		Version:       c.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd.Flags(), flags, args)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), s, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.SortFlags = false

	f.StringVarP(&flags.configPath, "config", "c", config.DefaultPath, "Config file path")
	f.StringVarP(&flags.scan, "scan", "s", "", "Scan this folder. Default is current folder")
	f.IntVarP(&flags.width, "wide", "w", defaults.Width, "Result width in pixels")
	f.IntVarP(&flags.height, "tall", "t", defaults.Height, "Result height in pixels")
	f.IntVarP(&flags.depth, "depth", "d", defaults.Depth, "Folder summary at this depth")
	f.BoolVar(&flags.unlimited, "unlimited", false, "Expand every folder, boxing individual files")
	f.IntVar(&flags.workers, "workers", defaults.Workers, "Number of concurrent subtree scans")
	f.StringVar(&flags.walker, "walker", defaults.Walker, "Scan strategy: native or fastwalk")
	f.Float64Var(&flags.boxRatio, "box-ratio", defaults.BoxRatio, "Split horizontally when width > ratio*height")
	f.StringSliceVarP(&flags.excludes, "exclude", "e", nil, "Regex patterns to exclude")
	f.StringVar(&flags.minSize, "min-size", defaults.MinSize, "Minimum file size (e.g., 1KB)")
	f.StringVarP(&flags.output, "output", "o", defaults.Output, "Output format: table, json or csv")
	f.BoolVar(&flags.debug, "debug", false, "Enable debug output")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}

// resolve merges the config file with the flags that were set explicitly.
func resolve(fs *pflag.FlagSet, flags flagValues, args []string) (settings, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return settings{}, fmt.Errorf("loading config: %w", err)
	}

	override := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	override("wide", func() { cfg.Width = flags.width })
	override("tall", func() { cfg.Height = flags.height })
	override("depth", func() { cfg.Depth = flags.depth })
	override("unlimited", func() { cfg.Unlimited = flags.unlimited })
	override("workers", func() { cfg.Workers = flags.workers })
	override("walker", func() { cfg.Walker = flags.walker })
	override("box-ratio", func() { cfg.BoxRatio = flags.boxRatio })
	override("exclude", func() { cfg.Exclude = flags.excludes })
	override("min-size", func() { cfg.MinSize = flags.minSize })
	override("output", func() { cfg.Output = flags.output })

	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	if !slices.Contains(allowedOutputs, cfg.Output) {
		return settings{}, fmt.Errorf("invalid output format %q: must be one of %v", cfg.Output, allowedOutputs)
	}

	if cfg.Walker != fstree.WalkerNative && cfg.Walker != fstree.WalkerFastwalk {
		return settings{}, fmt.Errorf("invalid walker %q: must be %q or %q", cfg.Walker, fstree.WalkerNative, fstree.WalkerFastwalk)
	}

	if cfg.Workers < 0 {
		return settings{}, errors.New("workers cannot be negative")
	}

	s := settings{Config: *cfg, Debug: flags.debug}

	// Parse minSize string to bytes
	if cfg.MinSize != "" {
		size, err := humanize.ParseBytes(cfg.MinSize)
		if err != nil {
			return settings{}, fmt.Errorf("invalid min-size: %w", err)
		}

		s.MinBytes = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	switch {
	case len(args) > 0:
		s.Path = args[0]
	case flags.scan != "":
		s.Path = flags.scan
	}

	return s, nil
}
