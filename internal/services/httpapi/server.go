// Package httpapi exposes the summarization pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repolens/internal/apperr"
	"github.com/temirov/repolens/internal/types"
)

const (
	defaultListenAddress    = "127.0.0.1:8000"
	defaultShutdownDuration = 5 * time.Second

	healthPath    = "/health"
	summarizePath = "/summarize"

	headerContentType = "Content-Type"
	mimeTypeJSON      = "application/json"

	invalidBodyMessage       = "Invalid request body: expected JSON with a 'github_url' field."
	missingURLMessage        = "Validation error: github_url is required."
	methodNotAllowedMessage  = "Method not allowed."
	responseEncodingLogEvent = "encode response"
)

// Summarizer produces a structured summary for a repository URL.
type Summarizer interface {
	Summarize(ctx context.Context, rawURL string) (*types.SummarizeResult, error)
}

// Config defines runtime options for the HTTP server.
type Config struct {
	Address         string
	ShutdownTimeout time.Duration
}

// Server serves the health and summarize endpoints.
type Server struct {
	config     Config
	summarizer Summarizer
	logger     *zap.Logger
}

// NewServer creates a Server with defaults applied.
func NewServer(config Config, summarizer Summarizer, logger *zap.Logger) Server {
	normalized := config
	if normalized.Address == "" {
		normalized.Address = defaultListenAddress
	}
	if normalized.ShutdownTimeout <= 0 {
		normalized.ShutdownTimeout = defaultShutdownDuration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Server{config: normalized, summarizer: summarizer, logger: logger}
}

// Run starts the server and blocks until the provided context is canceled.
// The notify callback receives the bound address once the listener is active.
func (server Server) Run(ctx context.Context, notify func(string)) error {
	listener, listenErr := net.Listen("tcp", server.config.Address)
	if listenErr != nil {
		return fmt.Errorf("listen on %s: %w", server.config.Address, listenErr)
	}
	actualAddress := listener.Addr().String()

	httpServer := &http.Server{Handler: server.Handler()}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		serveErr := httpServer.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve http api: %w", serveErr)
		}
		return nil
	})

	if notify != nil {
		notify(actualAddress)
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.config.ShutdownTimeout)
		defer cancel()
		shutdownErr := httpServer.Shutdown(shutdownCtx)
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) && !errors.Is(shutdownErr, http.ErrServerClosed) {
			return fmt.Errorf("shutdown http api: %w", shutdownErr)
		}
		return nil
	})

	return group.Wait()
}

// Handler returns the HTTP handler tree with CORS applied.
func (server Server) Handler() http.Handler {
	router := http.NewServeMux()
	router.HandleFunc(healthPath, server.handleHealth)
	router.HandleFunc(summarizePath, server.handleSummarize)
	return server.withCORS(router)
}

// withCORS applies permissive cross-origin headers so browser frontends can
// call the API directly, and answers preflight requests.
func (server Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if request.Method == http.MethodOptions {
			writer.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func (server Server) handleHealth(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		server.writeError(writer, http.StatusMethodNotAllowed, methodNotAllowedMessage)
		return
	}
	server.writeJSON(writer, http.StatusOK, map[string]string{"status": "ok"})
}

type summarizeRequest struct {
	GitHubURL string `json:"github_url"`
}

func (server Server) handleSummarize(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		server.writeError(writer, http.StatusMethodNotAllowed, methodNotAllowedMessage)
		return
	}

	var body summarizeRequest
	if decodeErr := json.NewDecoder(request.Body).Decode(&body); decodeErr != nil {
		server.writeError(writer, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	if body.GitHubURL == "" {
		server.writeError(writer, http.StatusBadRequest, missingURLMessage)
		return
	}

	result, summarizeErr := server.summarizer.Summarize(request.Context(), body.GitHubURL)
	if summarizeErr != nil {
		server.logger.Warn("summarize request failed",
			zap.String("kind", string(apperr.KindOf(summarizeErr))),
			zap.Int("status", apperr.StatusCode(summarizeErr)),
			zap.Error(summarizeErr))
		server.writeError(writer, apperr.StatusCode(summarizeErr), apperr.PublicMessage(summarizeErr))
		return
	}

	server.writeJSON(writer, http.StatusOK, result)
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (server Server) writeError(writer http.ResponseWriter, statusCode int, message string) {
	server.writeJSON(writer, statusCode, errorResponse{Status: "error", Message: message})
}

func (server Server) writeJSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(headerContentType, mimeTypeJSON)
	writer.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(writer).Encode(payload); encodeErr != nil {
		server.logger.Warn(responseEncodingLogEvent, zap.Error(encodeErr))
	}
}
