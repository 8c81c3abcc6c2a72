package fstree

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "go"},
		{"/tmp/archive.tar.gz", "gz"},
		{"photo.jpeg", "jpe"},
		{"notes.markdown", "mar"},
		{"Makefile", ""},
		{".bashrc", ""},
		{"/home/user/.config", ""},
		{"trailing.", ""},
		{"a..b", "b"},
		{"dir.d/file", ""},
		{"x.c", "c"},
	}

	for _, tt := range tests {
		if got := KindOf(tt.name); got != tt.want {
			t.Errorf("KindOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPrettySize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1.000 KB"},
		{1536, "1.500 KB"},
		{1024*1024 - 1, "1023.999 KB"},
		{1024 * 1024, "1.000 MB"},
		{5 * 1024 * 1024 / 2, "2.500 MB"},
		{1024 * 1024 * 1024, "1.000 GB"},
		{3 * 1024 * 1024 * 1024, "3.000 GB"},
	}

	for _, tt := range tests {
		if got := PrettySize(tt.size); got != tt.want {
			t.Errorf("PrettySize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestNewDirectory_SumsChildren(t *testing.T) {
	dir := NewDirectory("root", []*Entry{
		NewLeaf("root/a.txt", 60),
		NewDirectory("root/sub", []*Entry{NewLeaf("root/sub/b.go", 40)}),
	})

	if dir.Size != 100 {
		t.Errorf("Expected size 100, got %d", dir.Size)
	}

	if dir.Kind != DirectoryKind {
		t.Errorf("Expected kind %q, got %q", DirectoryKind, dir.Kind)
	}

	if dir.Children[0].Kind != "txt" {
		t.Errorf("Expected leaf kind %q, got %q", "txt", dir.Children[0].Kind)
	}

	files, dirs := dir.Count()
	if files != 2 || dirs != 2 {
		t.Errorf("Expected 2 files and 2 dirs, got %d files and %d dirs", files, dirs)
	}

	if d := dir.Depth(); d != 2 {
		t.Errorf("Expected depth 2, got %d", d)
	}
}

func TestEntry_WalkPreOrder(t *testing.T) {
	dir := NewDirectory("r", []*Entry{
		NewDirectory("r/x", []*Entry{NewLeaf("r/x/1", 1)}),
		NewLeaf("r/y", 2),
	})

	var names []string

	dir.Walk(func(e *Entry) bool {
		names = append(names, e.Name)

		return true
	})

	want := []string{"r", "r/x", "r/x/1", "r/y"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestEntry_EmptyDirectory(t *testing.T) {
	dir := NewDirectory("empty", nil)

	if dir.Size != 0 || dir.Depth() != 0 {
		t.Errorf("Expected empty directory of size 0 and depth 0, got size %d depth %d", dir.Size, dir.Depth())
	}

	if dir.PrettySize() != "0 Bytes" {
		t.Errorf("Expected %q, got %q", "0 Bytes", dir.PrettySize())
	}
}
