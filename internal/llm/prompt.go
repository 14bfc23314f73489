package llm

import "strings"

// SystemPrompt instructs the model to return the three-field JSON summary and
// nothing else.
const SystemPrompt = `You are a senior software engineer and technical analyst. Your task is to analyze a GitHub repository based on the provided metadata, directory structure, and source code files, then produce a structured summary.

You MUST return a valid JSON object with exactly these three fields:

{
  "summary": "<string: A clear, human-readable description of what this project does. 2-4 sentences. Focus on the project's purpose, key features, and target audience.>",
  "technologies": ["<string>", "..."],
  "structure": "<string: A brief description of how the project is organized: main directories, where core logic lives, where tests are, etc. 1-3 sentences.>"
}

Guidelines:
- "technologies" should list the primary programming languages, frameworks, libraries, and tools used (e.g. "Python", "FastAPI", "PostgreSQL", "Docker"). Include only significant dependencies, not every minor utility.
- Be specific and factual. Base your analysis only on the provided content.
- Do NOT include markdown fences, comments, or any text outside the JSON object.
- Return ONLY the JSON object, nothing else.`

const (
	userPromptHeader      = "Analyze the following GitHub repository and return a JSON summary."
	dependencyHintsHeader = "Dependency manifests in this repository declare the following packages:"
)

// BuildUserPrompt combines the assembled context with deterministic
// dependency hints extracted from manifest files. Hints ground the
// technologies list in what the manifests actually declare.
func BuildUserPrompt(contextText string, dependencyHints []string) string {
	sections := []string{userPromptHeader, contextText}
	if len(dependencyHints) > 0 {
		sections = append(sections, dependencyHintsHeader+"\n"+strings.Join(dependencyHints, ", "))
	}
	return strings.Join(sections, "\n\n")
}
