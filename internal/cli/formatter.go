package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/diskmap/internal/fstree"
	"github.com/idelchi/diskmap/internal/treemap"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// Report is the result of one scan and layout.
type Report struct {
	Title      string                 `json:"title"`
	Root       string                 `json:"root"`
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Depth      string                 `json:"depth"`
	TotalBytes int64                  `json:"total_bytes"`
	Stats      fstree.Stats           `json:"stats"`
	Boxes      []treemap.VisualRecord `json:"boxes"`
}

// csvHeader matches the columns a plotting front end expects.
var csvHeader = []string{"type", "name", "size", "left", "bottom", "right", "top"}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintCSV outputs one row per box.
func PrintCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, b := range report.Boxes {
		row := []string{
			b.Kind,
			b.Name,
			b.PrettySize,
			strconv.Itoa(b.Left),
			strconv.Itoa(b.Bottom),
			strconv.Itoa(b.Right),
			strconv.Itoa(b.Top),
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

// PrintTable outputs the report in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "%s\n\n", report.Title)

	fmt.Fprintln(w, "TYPE\tNAME\tSIZE\tLEFT\tBOTTOM\tRIGHT\tTOP")

	for _, b := range report.Boxes {
		kind := b.Kind
		if kind == "" {
			kind = "\"\""
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			kind, b.Name, b.PrettySize, b.Left, b.Bottom, b.Right, b.Top)
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Boxes:\t%d (%dx%d)\n", len(report.Boxes), report.Width, report.Height)
	fmt.Fprintf(w, "Total files:\t%d\n", report.Stats.Files)
	fmt.Fprintf(w, "Total directories:\t%d\n", report.Stats.Dirs)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes) //nolint:gosec // Sizes are never negative

	if report.Stats.Errors > 0 {
		fmt.Fprintf(w, "Skipped:\t%d unreadable entries\n", report.Stats.Errors)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Stats.Elapsed)

	return w.Flush()
}
