package contextbuild

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/temirov/repolens/internal/types"
)

// Limits carries the deployment-fixed size bounds applied during assembly.
type Limits struct {
	MaxContextChars int
	MaxTreeLines    int
	MaxFileLines    int
}

const (
	metadataHeader     = "=== REPOSITORY METADATA ==="
	treeHeader         = "=== DIRECTORY STRUCTURE ==="
	fileContentsHeader = "=== FILE CONTENTS ===\n"

	unknownFieldValue = "Unknown"

	// budgetReserveChars is subtracted from the remaining budget before
	// hard-truncating a high-priority file, leaving room for the block label.
	// The value is a tuned heuristic, not derived.
	budgetReserveChars = 200
	// minUsableBudgetChars is the smallest remaining budget still worth
	// spending on a hard-truncated high-priority file.
	minUsableBudgetChars = 500
)

// TruncateFileContent bounds content to maxLines, appending a notice carrying
// the original line count when truncation occurs. Content already within the
// limit is returned unchanged.
func TruncateFileContent(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}
	truncated := strings.Join(lines[:maxLines], "\n")
	return truncated + fmt.Sprintf("\n\n... (truncated, %d total lines)", len(lines))
}

// BuildContext assembles the metadata block, the rendered tree, and fetched
// file bodies into one bounded context string. Candidates are consumed in
// their (tier, path) order; once the character budget is exhausted,
// high-priority files (tier 1-3) are hard-truncated to fit while lower tiers
// end assembly with an omission notice. Losing a README or manifest mid-budget
// hurts summary quality far more than losing one low-tier source file.
func BuildContext(metadata types.RepositoryMetadata, entries []types.TreeEntry, fileBodies map[string]string, candidates []types.Candidate, limits Limits) string {
	var sections []string
	totalChars := 0

	metadataSection := buildMetadataSection(metadata)
	sections = append(sections, metadataSection)
	totalChars += len(metadataSection)

	treeSection := treeHeader + "\n" + RenderTree(entries, limits.MaxTreeLines) + "\n"
	sections = append(sections, treeSection)
	totalChars += len(treeSection)

	sections = append(sections, fileContentsHeader)
	totalChars += len(fileContentsHeader)

	for candidateIndex, candidate := range candidates {
		content, fetched := fileBodies[candidate.Path]
		if !fetched {
			continue
		}

		content = TruncateFileContent(content, limits.MaxFileLines)
		fileBlock := fmt.Sprintf("--- %s ---\n%s\n\n", candidate.Path, content)

		if totalChars+len(fileBlock) > limits.MaxContextChars {
			if candidate.Tier <= TierInfrastructure {
				available := limits.MaxContextChars - totalChars - budgetReserveChars
				if available > len(content) {
					available = len(content)
				}
				// Never cut through a multi-byte rune.
				for available > 0 && available < len(content) && !utf8.RuneStart(content[available]) {
					available--
				}
				if available > minUsableBudgetChars {
					fileBlock = fmt.Sprintf("--- %s (truncated to fit budget) ---\n%s\n\n", candidate.Path, content[:available])
					sections = append(sections, fileBlock)
					totalChars += len(fileBlock)
					continue
				}
			}
			omitted := countRemainingWithBodies(candidates[candidateIndex+1:], fileBodies)
			sections = append(sections, fmt.Sprintf("... (%d additional files omitted due to context budget)\n", omitted))
			break
		}

		sections = append(sections, fileBlock)
		totalChars += len(fileBlock)
	}

	return strings.Join(sections, "\n")
}

func countRemainingWithBodies(remaining []types.Candidate, fileBodies map[string]string) int {
	count := 0
	for _, candidate := range remaining {
		if _, fetched := fileBodies[candidate.Path]; fetched {
			count++
		}
	}
	return count
}

func buildMetadataSection(metadata types.RepositoryMetadata) string {
	name := metadata.Name
	if name == "" {
		name = unknownFieldValue
	}
	owner := metadata.Owner
	if owner == "" {
		owner = unknownFieldValue
	}

	lines := []string{
		metadataHeader,
		"Name: " + name,
		"Owner: " + owner,
	}
	if metadata.Description != "" {
		lines = append(lines, "Description: "+metadata.Description)
	}
	if metadata.Language != "" {
		lines = append(lines, "Primary Language: "+metadata.Language)
	}
	if len(metadata.Topics) > 0 {
		lines = append(lines, "Topics: "+strings.Join(metadata.Topics, ", "))
	}
	lines = append(lines, fmt.Sprintf("Stars: %d", metadata.Stars))
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
