package contextbuild

import (
	"fmt"
	"strings"

	"github.com/temirov/repolens/internal/types"
	"github.com/temirov/repolens/internal/utils"
)

const (
	treeIndentUnit          = "  "
	treeTruncationFormat    = "  ... (truncated, %d total entries)"
	treeDirectorySuffix     = "/"
	treeBlobSizeSuffixStart = "  ("
	treeBlobSizeSuffixEnd   = ")"
)

// RenderTree produces an indented directory listing of the repository tree,
// bounded to maxLines. Entries are walked in their natural tree order: this
// view exists to show repository shape, not fetch priority. Entries under
// skipped directories and blobs with excluded filenames or extensions are
// omitted.
func RenderTree(entries []types.TreeEntry, maxLines int) string {
	var lines []string

	for _, entry := range entries {
		segments := strings.Split(entry.Path, "/")

		if hasSkippedAncestor(segments) {
			continue
		}

		name := segments[len(segments)-1]
		if entry.Kind == types.EntryKindBlob && blobExcludedFromTree(name) {
			continue
		}

		indent := strings.Repeat(treeIndentUnit, len(segments)-1)
		switch {
		case entry.Kind == types.EntryKindTree:
			lines = append(lines, indent+name+treeDirectorySuffix)
		case entry.Size > 0:
			lines = append(lines, indent+name+treeBlobSizeSuffixStart+utils.FormatFileSize(entry.Size)+treeBlobSizeSuffixEnd)
		default:
			lines = append(lines, indent+name)
		}

		if len(lines) >= maxLines {
			lines = append(lines, fmt.Sprintf(treeTruncationFormat, len(entries)))
			break
		}
	}

	return strings.Join(lines, "\n")
}

func hasSkippedAncestor(segments []string) bool {
	for _, directorySegment := range segments[:len(segments)-1] {
		if _, skipped := skipDirectories[strings.ToLower(directorySegment)]; skipped {
			return true
		}
	}
	return false
}

func blobExcludedFromTree(name string) bool {
	lowerName := strings.ToLower(name)
	if _, skipped := skipFilenames[lowerName]; skipped {
		return true
	}
	return hasSkippedExtension(lowerName)
}
