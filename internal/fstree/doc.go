// Package fstree builds an in-memory, size-annotated model of a filesystem subtree.
//
// Files become leaves carrying their on-disk size, directories carry the sum of
// their children. Scans never fail part-way: an unreadable directory is kept with
// whatever children were read before the failure.
package fstree
