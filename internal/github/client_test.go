package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/temirov/repolens/internal/apperr"
	"github.com/temirov/repolens/internal/github"
	"github.com/temirov/repolens/internal/types"
)

func TestFetchMetadataMapsPayloadFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/octocat/hello-world" {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		if request.Header.Get("Accept") != "application/vnd.github.v3+json" {
			t.Errorf("unexpected accept header %q", request.Header.Get("Accept"))
		}
		if request.Header.Get("Authorization") != "Bearer token-value" {
			t.Errorf("unexpected authorization header %q", request.Header.Get("Authorization"))
		}
		writer.Write([]byte(`{
			"name": "hello-world",
			"owner": {"login": "octocat"},
			"html_url": "https://github.com/octocat/hello-world",
			"description": "demo",
			"default_branch": "trunk",
			"language": "Go",
			"stargazers_count": 7,
			"topics": ["demo", "golang"]
		}`))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).
		WithAPIBase(server.URL).
		WithAuthorizationToken("token-value")

	metadata, fetchError := client.FetchMetadata(context.Background(), "octocat", "hello-world")
	if fetchError != nil {
		t.Fatalf("unexpected error: %v", fetchError)
	}
	if metadata.Name != "hello-world" || metadata.Owner != "octocat" {
		t.Fatalf("unexpected identity: %+v", metadata)
	}
	if metadata.DefaultBranch != "trunk" || metadata.Stars != 7 || metadata.Language != "Go" {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}
}

func TestFetchMetadataFallbacksForSparsePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).WithAPIBase(server.URL)
	metadata, fetchError := client.FetchMetadata(context.Background(), "octocat", "hello-world")
	if fetchError != nil {
		t.Fatalf("unexpected error: %v", fetchError)
	}
	if metadata.Name != "hello-world" || metadata.Owner != "octocat" {
		t.Fatalf("expected identity fallbacks, got %+v", metadata)
	}
	if metadata.URL != "https://github.com/octocat/hello-world" {
		t.Fatalf("expected URL fallback, got %q", metadata.URL)
	}
	if metadata.DefaultBranch != "main" {
		t.Fatalf("expected default branch fallback, got %q", metadata.DefaultBranch)
	}
}

func TestGetAPIStatusMapping(t *testing.T) {
	testCases := []struct {
		name            string
		upstreamStatus  int
		expectedStatus  int
		expectedMessage string
	}{
		{"not found", http.StatusNotFound, http.StatusNotFound, "Repository not found"},
		{"rate limited", http.StatusForbidden, http.StatusTooManyRequests, "rate limit"},
		{"server error", http.StatusBadGateway, http.StatusBadGateway, "GitHub API returned status 502"},
	}
	for _, testCase := range testCases {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(testCase.upstreamStatus)
		}))

		client := github.NewClient(server.Client()).WithAPIBase(server.URL)
		_, fetchError := client.FetchMetadata(context.Background(), "octocat", "hello-world")
		server.Close()

		if fetchError == nil {
			t.Fatalf("%s: expected error", testCase.name)
		}
		if apperr.StatusCode(fetchError) != testCase.expectedStatus {
			t.Fatalf("%s: expected status %d, got %d", testCase.name, testCase.expectedStatus, apperr.StatusCode(fetchError))
		}
		if !strings.Contains(fetchError.Error(), testCase.expectedMessage) {
			t.Fatalf("%s: unexpected message %q", testCase.name, fetchError.Error())
		}
	}
}

func TestFetchTreeMapsEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/octocat/hello-world/git/trees/main" {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		if request.URL.Query().Get("recursive") != "1" {
			t.Errorf("expected recursive listing")
		}
		writer.Write([]byte(`{
			"truncated": true,
			"tree": [
				{"path": "src", "type": "tree"},
				{"path": "src/main.py", "type": "blob", "size": 120},
				{"path": "README.md", "type": "blob", "size": 42}
			]
		}`))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).WithAPIBase(server.URL)
	entries, fetchError := client.FetchTree(context.Background(), "octocat", "hello-world", "main")
	if fetchError != nil {
		t.Fatalf("unexpected error: %v", fetchError)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Kind != types.EntryKindTree || entries[0].Size != 0 {
		t.Fatalf("unexpected tree entry: %+v", entries[0])
	}
	if entries[1].Path != "src/main.py" || entries[1].Size != 120 {
		t.Fatalf("unexpected blob entry: %+v", entries[1])
	}
}

func TestFetchFileBodyReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/octocat/hello-world/main/src/main.py" {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		writer.Write([]byte("print('hi')\n"))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).WithRawBase(server.URL)
	content, fetched := client.FetchFileBody(context.Background(), "octocat", "hello-world", "main", "src/main.py")
	if !fetched {
		t.Fatalf("expected fetch to succeed")
	}
	if content != "print('hi')\n" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestFetchFileBodyEscapesPathSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/octocat/hello-world/main/docs/read me#1.md" {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		writer.Write([]byte("notes"))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).WithRawBase(server.URL)
	content, fetched := client.FetchFileBody(context.Background(), "octocat", "hello-world", "main", "docs/read me#1.md")
	if !fetched {
		t.Fatalf("expected fetch of a path with reserved characters to succeed")
	}
	if content != "notes" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestWithTimeoutBoundsRequests(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := github.NewClient(nil).WithAPIBase(server.URL).WithTimeout(50 * time.Millisecond)
	_, fetchError := client.FetchMetadata(context.Background(), "octocat", "hello-world")
	if fetchError == nil {
		t.Fatalf("expected a timeout error")
	}
	if apperr.StatusCode(fetchError) != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", apperr.StatusCode(fetchError))
	}
}

func TestWithTimeoutLeavesInjectedClientUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).WithAPIBase(server.URL).WithTimeout(time.Nanosecond)
	if _, fetchError := client.FetchMetadata(context.Background(), "octocat", "hello-world"); fetchError != nil {
		t.Fatalf("expected injected client to keep its own timeout, got %v", fetchError)
	}
}

func TestFetchFileBodyAbsentOutcomes(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"missing file", func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}},
		{"binary content", func(writer http.ResponseWriter, request *http.Request) {
			writer.Write([]byte("ELF\x00\x01\x02"))
		}},
		{"oversized body", func(writer http.ResponseWriter, request *http.Request) {
			writer.Write([]byte(strings.Repeat("x", 64)))
		}},
	}
	for _, testCase := range testCases {
		server := httptest.NewServer(testCase.handler)
		client := github.NewClient(server.Client()).WithRawBase(server.URL).WithMaxFileBytes(32)
		_, fetched := client.FetchFileBody(context.Background(), "octocat", "hello-world", "main", "file.bin")
		server.Close()

		if fetched {
			t.Fatalf("%s: expected absent result", testCase.name)
		}
	}
}

func TestFetchFileBodiesCollectsPartialResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasSuffix(request.URL.Path, "missing.py") {
			writer.WriteHeader(http.StatusNotFound)
			return
		}
		writer.Write([]byte("content of " + request.URL.Path))
	}))
	defer server.Close()

	client := github.NewClient(server.Client()).WithRawBase(server.URL).WithConcurrency(3)
	bodies := client.FetchFileBodies(context.Background(), "octocat", "hello-world", "main",
		[]string{"a.py", "b.py", "missing.py"})

	if len(bodies) != 2 {
		t.Fatalf("expected 2 fetched bodies, got %d: %v", len(bodies), bodies)
	}
	if _, present := bodies["missing.py"]; present {
		t.Fatalf("expected missing file to leave no entry")
	}
	if !strings.HasSuffix(bodies["a.py"], "/a.py") {
		t.Fatalf("unexpected body for a.py: %q", bodies["a.py"])
	}
}
