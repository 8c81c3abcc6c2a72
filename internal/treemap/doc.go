// Package treemap turns a size-annotated tree into positioned rectangles.
//
// Layout is greedy slice-and-dice: every entry receives a full-width or
// full-height strip of its parent's rectangle, proportional to its size,
// largest siblings first.
package treemap
