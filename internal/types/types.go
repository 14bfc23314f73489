// Package types defines every cross-package data structure used by repolens.
package types

const (
	// EntryKindBlob marks a file entry in a repository tree.
	EntryKindBlob = "blob"
	// EntryKindTree marks a directory entry in a repository tree.
	EntryKindTree = "tree"
)

// TreeEntry is a single path returned by the repository tree fetch.
type TreeEntry struct {
	Path string
	Kind string
	Size int64
}

// Candidate is a file selected for context inclusion, carrying its priority
// tier. Lower tier means higher priority.
type Candidate struct {
	Path string
	Size int64
	Tier int
}

// RepositoryMetadata captures the repository fields used for context assembly
// and surfaced in the final response.
type RepositoryMetadata struct {
	Name          string   `json:"name"`
	Owner         string   `json:"owner"`
	URL           string   `json:"url"`
	Description   string   `json:"description,omitempty"`
	DefaultBranch string   `json:"default_branch"`
	Language      string   `json:"language,omitempty"`
	Stars         int      `json:"stars"`
	Topics        []string `json:"topics,omitempty"`
}

// Summary is the validated three-field result recovered from the model output.
type Summary struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
}

// SummarizeResult is the full outcome of one summarization request.
type SummarizeResult struct {
	Summary      string             `json:"summary"`
	Technologies []string           `json:"technologies"`
	Structure    string             `json:"structure"`
	RepoMetadata RepositoryMetadata `json:"repo_metadata"`
}
