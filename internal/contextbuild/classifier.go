package contextbuild

import (
	"path"
	"strings"
)

// Priority tiers assigned by ClassifyTier. Lower is more important.
const (
	TierOverview       = 1
	TierManifest       = 2
	TierInfrastructure = 3
	TierEntryPoint     = 4
	TierSource         = 5
	TierSupplementary  = 6
)

const rootPackageInitFilename = "__init__.py"

// ShouldSkip reports whether the file at the given repository-relative path is
// excluded from context entirely. Directory segments are matched against the
// skip-directory set, the filename against the skip-filename set, and the
// extension against the skip-extension set, all case-insensitively.
func ShouldSkip(entryPath string) bool {
	segments := strings.Split(strings.ToLower(entryPath), "/")

	for _, directorySegment := range segments[:len(segments)-1] {
		if _, skipped := skipDirectories[directorySegment]; skipped {
			return true
		}
	}

	filename := segments[len(segments)-1]
	if _, skipped := skipFilenames[filename]; skipped {
		return true
	}
	return hasSkippedExtension(filename)
}

func hasSkippedExtension(lowerFilename string) bool {
	if _, skipped := skipExtensions[path.Ext(lowerFilename)]; skipped {
		return true
	}
	for _, compoundSuffix := range skipExtensionSuffixes {
		if strings.HasSuffix(lowerFilename, compoundSuffix) {
			return true
		}
	}
	return false
}

// ClassifyTier assigns a priority tier to a file that passed ShouldSkip. The
// second return value is false when the file carries no information worth
// including in context.
func ClassifyTier(entryPath string, size int64) (int, bool) {
	filename := strings.ToLower(path.Base(entryPath))
	extension := path.Ext(filename)
	stem := strings.TrimSuffix(filename, extension)

	if _, found := tierOverviewFiles[filename]; found {
		return TierOverview, true
	}
	if _, found := tierManifestFiles[filename]; found {
		return TierManifest, true
	}
	if _, found := tierInfrastructureFiles[filename]; found {
		return TierInfrastructure, true
	}

	_, sourceExtension := sourceExtensions[extension]

	if _, entryPoint := tierEntryPointBasenames[stem]; entryPoint && sourceExtension {
		return TierEntryPoint, true
	}
	// A root-level package init file serves as a package overview.
	if filename == rootPackageInitFilename && !strings.Contains(entryPath, "/") {
		return TierEntryPoint, true
	}

	if sourceExtension {
		return TierSource, true
	}
	if _, found := tierSupplementaryFiles[filename]; found {
		return TierSupplementary, true
	}
	return 0, false
}
