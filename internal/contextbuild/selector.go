package contextbuild

import (
	"sort"

	"github.com/temirov/repolens/internal/types"
)

// SelectFiles filters the repository tree down to context candidates and
// orders them by ascending (tier, path). Only blob entries are eligible;
// budget enforcement is deliberately left to BuildContext so selection stays
// independent of context-size configuration.
func SelectFiles(entries []types.TreeEntry) []types.Candidate {
	var candidates []types.Candidate

	for _, entry := range entries {
		if entry.Kind != types.EntryKindBlob {
			continue
		}
		if ShouldSkip(entry.Path) {
			continue
		}
		tier, included := ClassifyTier(entry.Path, entry.Size)
		if !included {
			continue
		}
		candidates = append(candidates, types.Candidate{
			Path: entry.Path,
			Size: entry.Size,
			Tier: tier,
		})
	}

	sort.SliceStable(candidates, func(left, right int) bool {
		if candidates[left].Tier != candidates[right].Tier {
			return candidates[left].Tier < candidates[right].Tier
		}
		return candidates[left].Path < candidates[right].Path
	})
	return candidates
}
