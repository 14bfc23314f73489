package contextbuild_test

import (
	"strings"
	"testing"

	"github.com/temirov/repolens/internal/contextbuild"
	"github.com/temirov/repolens/internal/types"
)

func TestRenderTreeEmptyInput(t *testing.T) {
	if rendered := contextbuild.RenderTree(nil, 500); rendered != "" {
		t.Fatalf("expected empty rendering, got %q", rendered)
	}
}

func TestRenderTreeIndentationAndMarkers(t *testing.T) {
	entries := []types.TreeEntry{
		{Path: "src", Kind: types.EntryKindTree},
		{Path: "src/main.py", Kind: types.EntryKindBlob, Size: 2048},
		{Path: "README.md", Kind: types.EntryKindBlob, Size: 500},
		{Path: "empty.py", Kind: types.EntryKindBlob, Size: 0},
	}

	rendered := contextbuild.RenderTree(entries, 500)
	lines := strings.Split(rendered, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), rendered)
	}
	if lines[0] != "src/" {
		t.Fatalf("expected directory marker, got %q", lines[0])
	}
	if lines[1] != "  main.py  (2.0 KB)" {
		t.Fatalf("unexpected blob rendering: %q", lines[1])
	}
	if lines[2] != "README.md  (500 B)" {
		t.Fatalf("unexpected byte-size rendering: %q", lines[2])
	}
	if lines[3] != "empty.py" {
		t.Fatalf("expected bare name for zero-size blob, got %q", lines[3])
	}
}

func TestRenderTreeOmitsExcludedSubtreeButKeepsSiblings(t *testing.T) {
	entries := []types.TreeEntry{
		{Path: "node_modules", Kind: types.EntryKindTree},
		{Path: "node_modules/lib.js", Kind: types.EntryKindBlob, Size: 900},
		{Path: "src", Kind: types.EntryKindTree},
		{Path: "src/app.py", Kind: types.EntryKindBlob, Size: 10},
	}

	rendered := contextbuild.RenderTree(entries, 500)
	if strings.Contains(rendered, "lib.js") {
		t.Fatalf("expected excluded subtree content to be omitted: %q", rendered)
	}
	if !strings.Contains(rendered, "app.py") {
		t.Fatalf("expected sibling entries to survive: %q", rendered)
	}
	// The excluded directory itself still appears; only its contents are hidden.
	if !strings.Contains(rendered, "node_modules/") {
		t.Fatalf("expected the directory entry itself to render: %q", rendered)
	}
}

func TestRenderTreeExcludesNoiseBlobs(t *testing.T) {
	entries := []types.TreeEntry{
		{Path: "logo.png", Kind: types.EntryKindBlob, Size: 100},
		{Path: "yarn.lock", Kind: types.EntryKindBlob, Size: 100},
		{Path: "main.go", Kind: types.EntryKindBlob, Size: 100},
	}

	rendered := contextbuild.RenderTree(entries, 500)
	if strings.Contains(rendered, "logo.png") || strings.Contains(rendered, "yarn.lock") {
		t.Fatalf("expected noise blobs to be excluded: %q", rendered)
	}
	if !strings.Contains(rendered, "main.go") {
		t.Fatalf("expected source blob to render: %q", rendered)
	}
}

func TestRenderTreeTruncatesAtMaxLines(t *testing.T) {
	entries := []types.TreeEntry{
		{Path: "a.go", Kind: types.EntryKindBlob, Size: 1},
		{Path: "b.go", Kind: types.EntryKindBlob, Size: 1},
		{Path: "c.go", Kind: types.EntryKindBlob, Size: 1},
		{Path: "d.go", Kind: types.EntryKindBlob, Size: 1},
	}

	rendered := contextbuild.RenderTree(entries, 2)
	lines := strings.Split(rendered, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 2 content lines plus truncation notice, got %d: %q", len(lines), rendered)
	}
	if !strings.Contains(lines[2], "truncated, 4 total entries") {
		t.Fatalf("expected truncation notice with total entry count, got %q", lines[2])
	}
	if strings.Contains(rendered, "c.go") || strings.Contains(rendered, "d.go") {
		t.Fatalf("expected entries beyond the limit to be dropped: %q", rendered)
	}
}
