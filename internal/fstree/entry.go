package fstree

import (
	"fmt"
	"path/filepath"
)

// DirectoryKind is the kind reported by every directory.
const DirectoryKind = "directory"

// maxKindLen is the number of characters after the last dot kept as a leaf kind.
const maxKindLen = 3

// Variant tags an Entry as a leaf or a directory.
type Variant uint8

const (
	// Leaf is a file, symlink or special file.
	Leaf Variant = iota
	// Directory is a node whose size is the sum of its children.
	Directory
)

func (v Variant) String() string {
	if v == Directory {
		return "directory"
	}

	return "leaf"
}

// Entry is one node of the size-annotated tree.
type Entry struct {
	// Variant tells leaves and directories apart.
	Variant Variant `json:"variant"`
	// Name is the path of the entry, the scan root joined with each component.
	Name string `json:"name"`
	// Size is the byte size of a leaf, or the sum of all descendants for a directory.
	Size int64 `json:"size"`
	// Kind is a short classification token, see KindOf.
	Kind string `json:"kind"`
	// Children in enumeration order. Always empty for leaves.
	Children []*Entry `json:"children,omitempty"`
}

// NewLeaf creates a leaf entry whose kind is derived from its name.
func NewLeaf(name string, size int64) *Entry {
	return &Entry{
		Variant: Leaf,
		Name:    name,
		Size:    size,
		Kind:    KindOf(name),
	}
}

// NewDirectory creates a directory entry and sums the sizes of its children.
func NewDirectory(name string, children []*Entry) *Entry {
	dir := &Entry{
		Variant:  Directory,
		Name:     name,
		Kind:     DirectoryKind,
		Children: children,
	}

	for _, child := range children {
		dir.Size += child.Size
	}

	return dir
}

// IsDir reports whether e is a directory.
func (e *Entry) IsDir() bool {
	return e.Variant == Directory
}

// Base returns the last element of the entry's path.
func (e *Entry) Base() string {
	return filepath.Base(e.Name)
}

// PrettySize formats the entry size, see PrettySize.
func (e *Entry) PrettySize() string {
	return PrettySize(e.Size)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s(%q, %d)", e.Variant, e.Name, e.Size)
}

// Walk calls fn for e and every descendant in pre-order, children in enumeration order.
// Returning false from fn skips the children of that entry.
func (e *Entry) Walk(fn func(*Entry) bool) {
	if !fn(e) {
		return
	}

	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Count returns the number of leaves and directories in the subtree rooted at e,
// e itself included.
func (e *Entry) Count() (files, dirs int64) {
	e.Walk(func(n *Entry) bool {
		if n.IsDir() {
			dirs++
		} else {
			files++
		}

		return true
	})

	return files, dirs
}

// Depth returns the number of levels that have to be expanded below e before
// every leaf is reached. A leaf or an empty directory has depth 0.
func (e *Entry) Depth() int {
	if len(e.Children) == 0 {
		return 0
	}

	deepest := 0

	for _, child := range e.Children {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}

	return deepest + 1
}

// KindOf returns the first one to three characters after the last dot of the
// base name, or "" when the name has no extension. Dot files such as
// ".bashrc" and names ending in a dot have no extension.
func KindOf(name string) string {
	base := filepath.Base(name)

	dot := -1

	for i := len(base) - 1; i > 0; i-- {
		if base[i] == '.' {
			dot = i

			break
		}
	}

	// a leading dot only is not an extension separator
	if dot <= 0 || dot == len(base)-1 {
		return ""
	}

	ext := []rune(base[dot+1:])
	if len(ext) > maxKindLen {
		ext = ext[:maxKindLen]
	}

	return string(ext)
}

// PrettySize formats a byte count for display: plain bytes below 1 KiB,
// otherwise KB, MB or GB (binary multiples) with three decimals.
func PrettySize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case size < kb:
		return fmt.Sprintf("%d Bytes", size)
	case size < mb:
		return fmt.Sprintf("%.3f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.3f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.3f GB", float64(size)/gb)
	}
}
