// Package techhint extracts dependency names from fetched manifest file
// bodies. The hints are deterministic grounding handed to the model alongside
// the assembled context so the technologies list reflects what the manifests
// actually declare.
package techhint

import (
	"encoding/json"
	"path"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

// maxHints bounds how many dependency names are surfaced; beyond this the
// list stops adding signal for a summarization prompt.
const maxHints = 40

var requirementsSeparators = []string{"==", ">=", "<=", "~=", "!=", ">", "<", "===", ";", "["}

// Detect scans the fetched file bodies for dependency manifests and returns a
// sorted, deduplicated list of declared package names. Unparsable manifests
// contribute nothing; detection never fails.
func Detect(fileBodies map[string]string) []string {
	seen := map[string]struct{}{}

	for filePath, body := range fileBodies {
		switch strings.ToLower(path.Base(filePath)) {
		case "go.mod":
			collect(seen, goModuleRequirements(body))
		case "package.json":
			collect(seen, packageJSONDependencies(body))
		case "requirements.txt", "requirements-dev.txt", "requirements_dev.txt":
			collect(seen, requirementsEntries(body))
		}
	}

	hints := make([]string, 0, len(seen))
	for hint := range seen {
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	return hints
}

func collect(seen map[string]struct{}, names []string) {
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		seen[trimmed] = struct{}{}
	}
}

func goModuleRequirements(body string) []string {
	parsed, parseErr := modfile.Parse("go.mod", []byte(body), nil)
	if parseErr != nil || parsed == nil {
		return nil
	}
	var names []string
	for _, requirement := range parsed.Require {
		if requirement == nil || requirement.Indirect || requirement.Mod.Path == "" {
			continue
		}
		names = append(names, requirement.Mod.Path)
	}
	return names
}

func packageJSONDependencies(body string) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if decodeErr := json.Unmarshal([]byte(body), &manifest); decodeErr != nil {
		return nil
	}
	var names []string
	for name := range manifest.Dependencies {
		names = append(names, name)
	}
	for name := range manifest.DevDependencies {
		names = append(names, name)
	}
	return names
}

func requirementsEntries(body string) []string {
	var names []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		name := trimmed
		for _, separator := range requirementsSeparators {
			if index := strings.Index(name, separator); index != -1 {
				name = name[:index]
			}
		}
		names = append(names, strings.TrimSpace(name))
	}
	return names
}
