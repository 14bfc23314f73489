// Package summarize orchestrates the summarization pipeline: URL validation,
// metadata and tree retrieval, file selection, context assembly, and model
// response recovery.
package summarize

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/temirov/repolens/internal/apperr"
	"github.com/temirov/repolens/internal/contextbuild"
	"github.com/temirov/repolens/internal/github"
	"github.com/temirov/repolens/internal/llm"
	"github.com/temirov/repolens/internal/techhint"
	"github.com/temirov/repolens/internal/tokenizer"
	"github.com/temirov/repolens/internal/types"
)

// RepositoryFetcher covers the GitHub operations the pipeline depends on.
type RepositoryFetcher interface {
	FetchMetadata(ctx context.Context, owner string, repository string) (types.RepositoryMetadata, error)
	FetchTree(ctx context.Context, owner string, repository string, branch string) ([]types.TreeEntry, error)
	FetchFileBodies(ctx context.Context, owner string, repository string, branch string, filePaths []string) map[string]string
}

// Service runs the summarization pipeline for one repository URL at a time.
// All pipeline state is request-scoped; a Service is safe for concurrent use.
type Service struct {
	fetcher      RepositoryFetcher
	completer    llm.Completer
	tokenCounter tokenizer.Counter
	limits       contextbuild.Limits
	logger       *zap.Logger
}

// NewService wires the pipeline collaborators together. The token counter is
// optional; when nil, no token estimate is logged.
func NewService(fetcher RepositoryFetcher, completer llm.Completer, tokenCounter tokenizer.Counter, limits contextbuild.Limits, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:      fetcher,
		completer:    completer,
		tokenCounter: tokenCounter,
		limits:       limits,
		logger:       logger,
	}
}

// Summarize validates the repository URL, gathers a bounded context from the
// repository contents, and recovers a structured summary from the model.
func (service *Service) Summarize(ctx context.Context, rawURL string) (*types.SummarizeResult, error) {
	owner, repository, parseErr := github.ParseRepositoryURL(rawURL)
	if parseErr != nil {
		return nil, parseErr
	}
	service.logger.Info("summarizing repository", zap.String("owner", owner), zap.String("repository", repository))

	metadata, metadataErr := service.fetcher.FetchMetadata(ctx, owner, repository)
	if metadataErr != nil {
		return nil, metadataErr
	}

	entries, treeErr := service.fetcher.FetchTree(ctx, owner, repository, metadata.DefaultBranch)
	if treeErr != nil {
		return nil, treeErr
	}
	if len(entries) == 0 {
		return nil, apperr.New(apperr.KindEmptyRepository, http.StatusUnprocessableEntity,
			"Repository appears to be empty (no files found).")
	}
	service.logger.Info("fetched repository tree",
		zap.Int("entries", len(entries)), zap.String("branch", metadata.DefaultBranch))

	candidates := contextbuild.SelectFiles(entries)
	filePaths := make([]string, len(candidates))
	for index, candidate := range candidates {
		filePaths[index] = candidate.Path
	}
	service.logger.Info("selected files for context",
		zap.Int("selected", len(candidates)), zap.Int("tree_entries", len(entries)))

	fileBodies := service.fetcher.FetchFileBodies(ctx, owner, repository, metadata.DefaultBranch, filePaths)
	service.logger.Info("fetched file contents", zap.Int("files", len(fileBodies)))

	dependencyHints := techhint.Detect(fileBodies)
	contextText := contextbuild.BuildContext(metadata, entries, fileBodies, candidates, service.limits)
	service.logContextSize(contextText)

	rawResponse, completionErr := service.completer.Complete(ctx, llm.SystemPrompt, llm.BuildUserPrompt(contextText, dependencyHints))
	if completionErr != nil {
		return nil, completionErr
	}
	service.logger.Info("model response received", zap.Int("chars", len(rawResponse)))

	object, extractErr := llm.ExtractObject(rawResponse)
	if extractErr != nil {
		service.logger.Warn("model response recovery failed", zap.Error(extractErr))
		return nil, apperr.Wrap(apperr.KindModel, http.StatusBadGateway, extractErr.Error(), extractErr)
	}
	summary, validateErr := llm.ValidateSummary(object)
	if validateErr != nil {
		service.logger.Warn("model response schema invalid", zap.Error(validateErr))
		return nil, apperr.Wrap(apperr.KindModel, http.StatusBadGateway, validateErr.Error(), validateErr)
	}

	return &types.SummarizeResult{
		Summary:      summary.Summary,
		Technologies: summary.Technologies,
		Structure:    summary.Structure,
		RepoMetadata: metadata,
	}, nil
}

func (service *Service) logContextSize(contextText string) {
	fields := []zap.Field{zap.Int("chars", len(contextText))}
	if service.tokenCounter != nil {
		if tokens, countErr := service.tokenCounter.CountString(contextText); countErr == nil {
			fields = append(fields,
				zap.Int("token_estimate", tokens),
				zap.String("tokenizer", service.tokenCounter.Name()))
		}
	}
	service.logger.Info("assembled context", fields...)
}
