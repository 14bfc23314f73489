package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/temirov/repolens/internal/types"
)

// ParseError reports that no JSON object could be recovered from model output.
type ParseError struct {
	Raw string
}

// Error returns the caller-facing message.
func (parseError *ParseError) Error() string {
	return "LLM returned a response that could not be parsed as JSON. This is usually transient, please try again."
}

// SchemaError reports the first missing or invalid field of a recovered object.
type SchemaError struct {
	Field string
}

// Error returns the caller-facing message naming the offending field.
func (schemaError *SchemaError) Error() string {
	return fmt.Sprintf("LLM response is missing a valid '%s' field.", schemaError.Field)
}

// fencedBlockPattern matches a markdown code fence with an optional language
// tag, capturing the inner text.
var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?\\s*```")

// ExtractObject recovers a JSON object from free-form model output. The
// fallback chain is strict and ordered: strip a fenced code block wrapper,
// attempt a direct parse, then parse the substring between the first '{' and
// the last '}'. Anything beyond that chain would make recovery
// nondeterministic.
func ExtractObject(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)

	if match := fencedBlockPattern.FindStringSubmatch(trimmed); match != nil {
		trimmed = strings.TrimSpace(match[1])
	}

	if object, parsed := parseObject(trimmed); parsed {
		return object, nil
	}

	braceStart := strings.Index(trimmed, "{")
	braceEnd := strings.LastIndex(trimmed, "}")
	if braceStart != -1 && braceEnd > braceStart {
		if object, parsed := parseObject(trimmed[braceStart : braceEnd+1]); parsed {
			return object, nil
		}
	}

	return nil, &ParseError{Raw: text}
}

func parseObject(candidate string) (map[string]any, bool) {
	var object map[string]any
	if err := json.Unmarshal([]byte(candidate), &object); err != nil {
		return nil, false
	}
	if object == nil {
		return nil, false
	}
	return object, true
}

// ValidateSummary checks the recovered object against the three-field summary
// schema and normalizes the technologies list. Validation stops at the first
// missing, wrong-typed, or empty required field.
func ValidateSummary(object map[string]any) (types.Summary, error) {
	summaryValue, _ := object["summary"].(string)
	summary := strings.TrimSpace(summaryValue)
	if summary == "" {
		return types.Summary{}, &SchemaError{Field: "summary"}
	}

	rawTechnologies, listTyped := object["technologies"].([]any)
	if !listTyped {
		return types.Summary{}, &SchemaError{Field: "technologies"}
	}

	structureValue, _ := object["structure"].(string)
	structure := strings.TrimSpace(structureValue)
	if structure == "" {
		return types.Summary{}, &SchemaError{Field: "structure"}
	}

	return types.Summary{
		Summary:      summary,
		Technologies: normalizeTechnologies(rawTechnologies),
		Structure:    structure,
	}, nil
}

// normalizeTechnologies drops falsy entries and coerces the rest to strings.
func normalizeTechnologies(rawEntries []any) []string {
	technologies := make([]string, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		switch entry := rawEntry.(type) {
		case nil:
			continue
		case string:
			if entry == "" {
				continue
			}
			technologies = append(technologies, entry)
		case bool:
			if !entry {
				continue
			}
			technologies = append(technologies, fmt.Sprintf("%v", entry))
		case float64:
			if entry == 0 {
				continue
			}
			technologies = append(technologies, fmt.Sprintf("%v", entry))
		default:
			technologies = append(technologies, fmt.Sprintf("%v", entry))
		}
	}
	return technologies
}
