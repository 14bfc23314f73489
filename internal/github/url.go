package github

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/temirov/repolens/internal/apperr"
)

var repositoryNamePattern = regexp.MustCompile(`^[\w.\-]+$`)

// ParseRepositoryURL extracts the owner and repository name from a github.com
// URL. Trailing slashes and a trailing .git suffix are tolerated; anything
// that is not a github.com repository URL is rejected as caller input error.
func ParseRepositoryURL(rawURL string) (string, string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parsed, parseErr := url.Parse(trimmed)
	if parseErr != nil {
		return "", "", apperr.Wrap(apperr.KindInput, http.StatusBadRequest, "URL must be a github.com repository URL.", parseErr)
	}
	hostname := parsed.Hostname()
	if hostname != "github.com" && hostname != "www.github.com" {
		return "", "", apperr.New(apperr.KindInput, http.StatusBadRequest, "URL must be a github.com repository URL.")
	}

	var pathSegments []string
	for _, segment := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if segment != "" {
			pathSegments = append(pathSegments, segment)
		}
	}
	if len(pathSegments) < 2 {
		return "", "", apperr.New(apperr.KindInput, http.StatusBadRequest,
			"Could not extract owner/repo from the URL. Expected format: https://github.com/{owner}/{repo}")
	}

	owner, repository := pathSegments[0], pathSegments[1]
	if !repositoryNamePattern.MatchString(owner) || !repositoryNamePattern.MatchString(repository) {
		return "", "", apperr.New(apperr.KindInput, http.StatusBadRequest,
			fmt.Sprintf("Invalid owner or repo name: %s/%s", owner, repository))
	}
	return owner, repository, nil
}
