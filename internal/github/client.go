// Package github fetches repository metadata, trees, and raw file contents
// from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/repolens/internal/apperr"
	"github.com/temirov/repolens/internal/types"
	"github.com/temirov/repolens/internal/utils"
)

const (
	defaultAPIBaseURL     = "https://api.github.com"
	defaultRawBaseURL     = "https://raw.githubusercontent.com"
	defaultUserAgent      = "repolens/1.0"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxFileBytes   = 512_000
	defaultConcurrency    = 10

	headerAccept              = "Accept"
	headerAuthorization       = "Authorization"
	headerUserAgent           = "User-Agent"
	acceptGitHubJSON          = "application/vnd.github.v3+json"
	authorizationBearerPrefix = "Bearer "
)

type httpClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// Client wraps the GitHub REST API endpoints the summarization pipeline needs.
type Client struct {
	client                   httpClient
	ownsClient               bool
	apiBase                  string
	rawBase                  string
	userAgent                string
	authorizationHeaderValue string
	maxFileBytes             int64
	concurrency              int
}

// NewClient constructs a Client with default endpoints. Passing nil installs
// an http.Client with the default request timeout.
func NewClient(client httpClient) Client {
	ownsClient := client == nil
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return Client{
		client:       client,
		ownsClient:   ownsClient,
		apiBase:      defaultAPIBaseURL,
		rawBase:      defaultRawBaseURL,
		userAgent:    defaultUserAgent,
		maxFileBytes: defaultMaxFileBytes,
		concurrency:  defaultConcurrency,
	}
}

// WithAPIBase overrides the REST API base URL.
func (gitHubClient Client) WithAPIBase(base string) Client {
	if base != "" {
		gitHubClient.apiBase = strings.TrimRight(base, "/")
	}
	return gitHubClient
}

// WithRawBase overrides the raw content base URL.
func (gitHubClient Client) WithRawBase(base string) Client {
	if base != "" {
		gitHubClient.rawBase = strings.TrimRight(base, "/")
	}
	return gitHubClient
}

// WithTimeout overrides the request timeout. Only the default HTTP client is
// adjusted; an injected client manages its own timeout and is left untouched.
func (gitHubClient Client) WithTimeout(timeout time.Duration) Client {
	if timeout <= 0 || !gitHubClient.ownsClient {
		return gitHubClient
	}
	gitHubClient.client = &http.Client{Timeout: timeout}
	return gitHubClient
}

// WithAuthorizationToken configures bearer authentication for API calls.
func (gitHubClient Client) WithAuthorizationToken(token string) Client {
	if token != "" {
		gitHubClient.authorizationHeaderValue = authorizationBearerPrefix + token
	}
	return gitHubClient
}

// WithMaxFileBytes overrides the per-file fetch size ceiling.
func (gitHubClient Client) WithMaxFileBytes(maxFileBytes int64) Client {
	if maxFileBytes > 0 {
		gitHubClient.maxFileBytes = maxFileBytes
	}
	return gitHubClient
}

// WithConcurrency overrides the bounded width used by FetchFileBodies.
func (gitHubClient Client) WithConcurrency(concurrency int) Client {
	if concurrency > 0 {
		gitHubClient.concurrency = concurrency
	}
	return gitHubClient
}

type metadataPayload struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	HTMLURL         string   `json:"html_url"`
	Description     string   `json:"description"`
	DefaultBranch   string   `json:"default_branch"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	Topics          []string `json:"topics"`
}

type treePayload struct {
	Truncated bool `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	} `json:"tree"`
}

// FetchMetadata returns basic repository metadata for owner/repository.
func (gitHubClient Client) FetchMetadata(ctx context.Context, owner string, repository string) (types.RepositoryMetadata, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", gitHubClient.apiBase, owner, repository)
	body, fetchErr := gitHubClient.getAPI(ctx, endpoint)
	if fetchErr != nil {
		return types.RepositoryMetadata{}, fetchErr
	}

	var payload metadataPayload
	if decodeErr := json.Unmarshal(body, &payload); decodeErr != nil {
		return types.RepositoryMetadata{}, apperr.Wrap(apperr.KindUpstream, http.StatusBadGateway,
			"GitHub API returned an unreadable response.", decodeErr)
	}

	metadata := types.RepositoryMetadata{
		Name:          payload.Name,
		Owner:         payload.Owner.Login,
		URL:           payload.HTMLURL,
		Description:   payload.Description,
		DefaultBranch: payload.DefaultBranch,
		Language:      payload.Language,
		Stars:         payload.StargazersCount,
		Topics:        payload.Topics,
	}
	if metadata.Name == "" {
		metadata.Name = repository
	}
	if metadata.Owner == "" {
		metadata.Owner = owner
	}
	if metadata.URL == "" {
		metadata.URL = fmt.Sprintf("https://github.com/%s/%s", owner, repository)
	}
	if metadata.DefaultBranch == "" {
		metadata.DefaultBranch = "main"
	}
	return metadata, nil
}

// FetchTree returns the full recursive file tree for the given branch. GitHub
// marks very large trees as truncated; the partial list is returned as-is.
func (gitHubClient Client) FetchTree(ctx context.Context, owner string, repository string, branch string) ([]types.TreeEntry, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", gitHubClient.apiBase, owner, repository, url.PathEscape(branch))
	body, fetchErr := gitHubClient.getAPI(ctx, endpoint)
	if fetchErr != nil {
		return nil, fetchErr
	}

	var payload treePayload
	if decodeErr := json.Unmarshal(body, &payload); decodeErr != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, http.StatusBadGateway,
			"GitHub API returned an unreadable response.", decodeErr)
	}

	entries := make([]types.TreeEntry, 0, len(payload.Tree))
	for _, item := range payload.Tree {
		entry := types.TreeEntry{Path: item.Path, Kind: item.Type}
		if item.Type == types.EntryKindBlob {
			entry.Size = item.Size
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FetchFileBody returns the raw text content of one file. The second return
// value is false when the file is unavailable, oversized, or binary; absence
// is a normal outcome, not an error.
func (gitHubClient Client) FetchFileBody(ctx context.Context, owner string, repository string, branch string, filePath string) (string, bool) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s/%s", gitHubClient.rawBase, owner, repository, url.PathEscape(branch), escapePathSegments(filePath))

	request, requestErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if requestErr != nil {
		return "", false
	}
	request.Header.Set(headerUserAgent, gitHubClient.userAgent)

	response, responseErr := gitHubClient.client.Do(request)
	if responseErr != nil {
		return "", false
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", false
	}
	if response.ContentLength > gitHubClient.maxFileBytes {
		return "", false
	}

	body, readErr := io.ReadAll(io.LimitReader(response.Body, gitHubClient.maxFileBytes+1))
	if readErr != nil {
		return "", false
	}
	if int64(len(body)) > gitHubClient.maxFileBytes {
		return "", false
	}

	content := string(body)
	if utils.LooksBinary(content) {
		return "", false
	}
	return content, true
}

// FetchFileBodies fetches many file bodies with bounded concurrency. A failed
// or skipped fetch leaves no map entry and never affects the other paths.
func (gitHubClient Client) FetchFileBodies(ctx context.Context, owner string, repository string, branch string, filePaths []string) map[string]string {
	results := make(map[string]string, len(filePaths))
	var resultsMutex sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(gitHubClient.concurrency)

	for _, filePath := range filePaths {
		filePath := filePath
		group.Go(func() error {
			content, fetched := gitHubClient.FetchFileBody(groupCtx, owner, repository, branch, filePath)
			if !fetched {
				return nil
			}
			resultsMutex.Lock()
			results[filePath] = content
			resultsMutex.Unlock()
			return nil
		})
	}

	_ = group.Wait()
	return results
}

// escapePathSegments escapes every segment of a repository-relative path while
// keeping the slash separators intact.
func escapePathSegments(filePath string) string {
	segments := strings.Split(filePath, "/")
	for index, segment := range segments {
		segments[index] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func (gitHubClient Client) getAPI(ctx context.Context, endpoint string) ([]byte, error) {
	request, requestErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if requestErr != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, http.StatusBadGateway, "Network error while contacting GitHub.", requestErr)
	}
	request.Header.Set(headerAccept, acceptGitHubJSON)
	request.Header.Set(headerUserAgent, gitHubClient.userAgent)
	if gitHubClient.authorizationHeaderValue != "" {
		request.Header.Set(headerAuthorization, gitHubClient.authorizationHeaderValue)
	}

	response, responseErr := gitHubClient.client.Do(request)
	if responseErr != nil {
		return nil, classifyTransportError(responseErr)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.New(apperr.KindUpstream, http.StatusNotFound,
			"Repository not found. Make sure the URL points to a public repository.")
	case response.StatusCode == http.StatusForbidden:
		return nil, apperr.New(apperr.KindUpstream, http.StatusTooManyRequests,
			"GitHub API rate limit exceeded. Set the GITHUB_TOKEN environment variable for higher limits.")
	case response.StatusCode != http.StatusOK:
		return nil, apperr.New(apperr.KindUpstream, response.StatusCode,
			fmt.Sprintf("GitHub API returned status %d.", response.StatusCode))
	}

	body, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, http.StatusBadGateway, "Network error while contacting GitHub.", readErr)
	}
	return body, nil
}

func classifyTransportError(transportErr error) error {
	var netError net.Error
	if errors.Is(transportErr, context.DeadlineExceeded) || (errors.As(transportErr, &netError) && netError.Timeout()) {
		return apperr.Wrap(apperr.KindUpstream, http.StatusGatewayTimeout,
			"GitHub API request timed out. Please try again.", transportErr)
	}
	return apperr.Wrap(apperr.KindUpstream, http.StatusBadGateway, "Network error while contacting GitHub.", transportErr)
}
