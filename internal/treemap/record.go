package treemap

import "github.com/idelchi/diskmap/internal/fstree"

// VisualRecord is one rectangle ready for rendering.
type VisualRecord struct {
	// Kind is the entry's classification token.
	Kind string `json:"type"`
	// Name is the entry path.
	Name string `json:"name"`
	// Size is the raw size in bytes.
	Size int64 `json:"bytes"`
	// PrettySize is the human-readable size.
	PrettySize string `json:"size"`
	Left       int    `json:"left"`
	Bottom     int    `json:"bottom"`
	Right      int    `json:"right"`
	Top        int    `json:"top"`
}

// NewRecord builds the record for entry e placed in box b.
func NewRecord(e *fstree.Entry, b Box) VisualRecord {
	return VisualRecord{
		Kind:       e.Kind,
		Name:       e.Name,
		Size:       e.Size,
		PrettySize: e.PrettySize(),
		Left:       b.X0,
		Bottom:     b.Y0,
		Right:      b.Right(),
		Top:        b.Top(),
	}
}
