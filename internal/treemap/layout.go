package treemap

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/idelchi/diskmap/internal/fstree"
)

const (
	// DefaultBoxRatio is the width/height threshold above which a rectangle is split horizontally.
	DefaultBoxRatio = 0.5
	// UnlimitedDepth expands every directory, so that only leaves get boxes.
	UnlimitedDepth = math.MaxInt
)

// ErrInvalidLayout is returned for layout inputs that cannot produce sensible geometry.
var ErrInvalidLayout = errors.New("invalid layout")

// Rect is an axis-aligned rectangle carrying the size it stands for.
// (X0, Y0) is the lower-left corner, (DX, DY) the width and height.
type Rect struct {
	Size int64 `json:"size"`
	X0   int   `json:"x0"`
	Y0   int   `json:"y0"`
	DX   int   `json:"dx"`
	DY   int   `json:"dy"`
}

// Box is the rectangle assigned to an entry.
type Box = Rect

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.DX == 0 || r.DY == 0
}

// Area returns DX*DY.
func (r Rect) Area() int64 {
	return int64(r.DX) * int64(r.DY)
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int {
	return r.X0 + r.DX
}

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int {
	return r.Y0 + r.DY
}

// Place carves a strip for an item of the given size out of rect and returns
// the strip together with what is left of rect.
//
// The strip spans the full height of rect when rect.DX > boxRatio*rect.DY and the
// full width otherwise; its length along the split axis is proportional to
// size/rect.Size, rounded half to even. Rounding error is absorbed by the
// remaining rectangle. When rect.Size or size is zero nothing is placed and rect
// is returned unchanged.
func Place(size int64, rect Rect, boxRatio float64) (box, rest Rect, ok bool) {
	if rect.Size == 0 || size == 0 {
		return Rect{}, rect, false
	}

	ratio := float64(size) / float64(rect.Size)

	if float64(rect.DX) > boxRatio*float64(rect.DY) {
		dx := int(math.RoundToEven(float64(rect.DX) * ratio))

		box = Rect{Size: size, X0: rect.X0, Y0: rect.Y0, DX: dx, DY: rect.DY}
		rest = Rect{Size: rect.Size - size, X0: rect.X0 + dx, Y0: rect.Y0, DX: rect.DX - dx, DY: rect.DY}

		return box, rest, true
	}

	dy := int(math.RoundToEven(float64(rect.DY) * ratio))

	box = Rect{Size: size, X0: rect.X0, Y0: rect.Y0, DX: rect.DX, DY: dy}
	rest = Rect{Size: rect.Size - size, X0: rect.X0, Y0: rect.Y0 + dy, DX: rect.DX, DY: rect.DY - dy}

	return box, rest, true
}

// Arranger lays out size-annotated trees with slice-and-dice subdivision.
type Arranger struct {
	// BoxRatio is the width/height threshold for horizontal splits.
	BoxRatio float64
}

// Arrange assigns boxes to root and its descendants inside rect, expanding at
// most maxDepth directory levels. Directories that are expanded do not keep a
// box of their own; directories at the depth limit are boxed as one unit.
func (a Arranger) Arrange(root *fstree.Entry, rect Rect, maxDepth int) (*Placement, error) {
	switch {
	case root == nil:
		return nil, fmt.Errorf("%w: nil root", ErrInvalidLayout)
	case rect.DX < 0 || rect.DY < 0:
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidLayout, rect.DX, rect.DY)
	case maxDepth < 0:
		return nil, fmt.Errorf("%w: negative depth %d", ErrInvalidLayout, maxDepth)
	case !(a.BoxRatio > 0):
		return nil, fmt.Errorf("%w: box ratio must be positive, got %v", ErrInvalidLayout, a.BoxRatio)
	case rect.Size < root.Size:
		return nil, fmt.Errorf("%w: rectangle size %d smaller than root size %d", ErrInvalidLayout, rect.Size, root.Size)
	}

	p := &Placement{
		root:     root,
		rect:     rect,
		depth:    maxDepth,
		boxes:    make(map[*fstree.Entry]Box),
		expanded: make(map[*fstree.Entry]struct{}),
	}

	a.arrange(p, root, rect, maxDepth)

	return p, nil
}

// arrange places entry in rect, then its children inside the entry's box, and
// returns the part of rect left for the entry's later siblings.
func (a Arranger) arrange(p *Placement, entry *fstree.Entry, rect Rect, depth int) Rect {
	box, rest, ok := Place(entry.Size, rect, a.BoxRatio)
	if !ok {
		return rest
	}

	if depth > 0 && entry.IsDir() && !box.Empty() {
		p.expanded[entry] = struct{}{}

		use := box
		for _, child := range bySizeDesc(entry.Children) {
			use = a.arrange(p, child, use, depth-1)
		}

		return rest
	}

	if !box.Empty() {
		p.boxes[entry] = box
	}

	return rest
}

// bySizeDesc returns a copy of children sorted largest first, ties kept in enumeration order.
func bySizeDesc(children []*fstree.Entry) []*fstree.Entry {
	sorted := slices.Clone(children)

	slices.SortStableFunc(sorted, func(a, b *fstree.Entry) int {
		return cmp.Compare(b.Size, a.Size)
	})

	return sorted
}

// Placement is the outcome of one layout pass. The tree itself is never modified.
type Placement struct {
	root     *fstree.Entry
	rect     Rect
	depth    int
	boxes    map[*fstree.Entry]Box
	expanded map[*fstree.Entry]struct{}
}

// Root returns the entry the placement was computed for.
func (p *Placement) Root() *fstree.Entry {
	return p.root
}

// Rect returns the rectangle the root was placed into.
func (p *Placement) Rect() Rect {
	return p.rect
}

// Depth returns the depth limit of the pass.
func (p *Placement) Depth() int {
	return p.depth
}

// Box returns the box assigned to e, if any.
func (p *Placement) Box(e *fstree.Entry) (Box, bool) {
	b, ok := p.boxes[e]

	return b, ok
}

// Len returns the number of boxed entries.
func (p *Placement) Len() int {
	return len(p.boxes)
}

// Collect yields every boxed entry in pre-order, children in enumeration order.
func (p *Placement) Collect() iter.Seq2[*fstree.Entry, Box] {
	return func(yield func(*fstree.Entry, Box) bool) {
		p.collect(p.root, yield)
	}
}

func (p *Placement) collect(e *fstree.Entry, yield func(*fstree.Entry, Box) bool) bool {
	if b, ok := p.boxes[e]; ok {
		return yield(e, b)
	}

	// only expanded directories have boxed descendants
	if _, ok := p.expanded[e]; !ok {
		return true
	}

	for _, child := range e.Children {
		if !p.collect(child, yield) {
			return false
		}
	}

	return true
}

// Records converts the placement into renderable records.
func (p *Placement) Records() []VisualRecord {
	records := make([]VisualRecord, 0, len(p.boxes))

	for e, b := range p.Collect() {
		records = append(records, NewRecord(e, b))
	}

	return records
}

// Arrange lays out root in a width x height rectangle anchored at the origin,
// using DefaultBoxRatio.
func Arrange(root *fstree.Entry, width, height, maxDepth int) (*Placement, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidLayout)
	}

	rect := Rect{Size: root.Size, DX: width, DY: height}

	return Arranger{BoxRatio: DefaultBoxRatio}.Arrange(root, rect, maxDepth)
}

// Layout lays out root like Arrange and returns the boxed entries as records.
func Layout(root *fstree.Entry, width, height, maxDepth int) ([]VisualRecord, error) {
	p, err := Arrange(root, width, height, maxDepth)
	if err != nil {
		return nil, err
	}

	return p.Records(), nil
}
