// Package cli provides the command line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repolens/internal/config"
	"github.com/temirov/repolens/internal/contextbuild"
	"github.com/temirov/repolens/internal/github"
	"github.com/temirov/repolens/internal/llm"
	"github.com/temirov/repolens/internal/services/clipboard"
	"github.com/temirov/repolens/internal/services/httpapi"
	"github.com/temirov/repolens/internal/summarize"
	"github.com/temirov/repolens/internal/tokenizer"
	"github.com/temirov/repolens/internal/utils"
)

const (
	rootUse              = "repolens"
	rootShortDescription = "repolens command line interface"
	rootLongDescription  = `repolens summarizes public GitHub repositories with a language model.
It fetches repository metadata and a prioritized subset of files, assembles a
size-bounded context, and returns a structured summary of what the project
does, its technologies, and its layout.`

	serveUse              = "serve"
	serveShortDescription = "run the summarization HTTP API"
	serveLongDescription  = `Start the HTTP API exposing GET /health and POST /summarize.
The server shuts down gracefully on SIGINT or SIGTERM.`
	serveUsageExample = `  # Serve on the configured address
  repolens serve

  # Serve on a specific address
  repolens serve --address 0.0.0.0:8080`

	summarizeUse              = "summarize <github-url>"
	summarizeShortDescription = "summarize one repository and print the result"
	summarizeLongDescription  = `Run the summarization pipeline once for the given repository URL and
print the structured result as JSON.`
	summarizeUsageExample = `  # Summarize a repository
  repolens summarize https://github.com/psf/requests

  # Summarize and copy the result to the clipboard
  repolens summarize --clipboard https://github.com/psf/requests`

	addressFlagName        = "address"
	addressFlagDescription = "listen address for the HTTP API"
	configFlagName         = "config"
	configFlagDescription  = "path to a configuration file"
	clipboardFlagName      = "clipboard"
	clipboardFlagUsage     = "copy the JSON result to the system clipboard"

	listeningMessage            = "http api listening"
	tokenizerUnavailableMessage = "tokenizer unavailable, token estimates disabled"
)

// applicationVersion is injected at build time via -ldflags.
var applicationVersion = "dev"

// Execute runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       applicationVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().String(configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(newServeCommand())
	rootCommand.AddCommand(newSummarizeCommand())
	return rootCommand
}

func newServeCommand() *cobra.Command {
	serveCommand := &cobra.Command{
		Use:     serveUse,
		Short:   serveShortDescription,
		Long:    serveLongDescription,
		Example: serveUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, logger, buildErr := loadConfigurationAndLogger(command)
			if buildErr != nil {
				return buildErr
			}
			defer func() { _ = logger.Sync() }()

			if addressOverride, _ := command.Flags().GetString(addressFlagName); addressOverride != "" {
				configuration.ListenAddress = addressOverride
			}

			service := buildService(configuration, logger)
			server := httpapi.NewServer(httpapi.Config{Address: configuration.ListenAddress}, service, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, func(boundAddress string) {
				logger.Info(listeningMessage, zap.String("address", boundAddress))
			})
		},
	}
	serveCommand.Flags().String(addressFlagName, "", addressFlagDescription)
	return serveCommand
}

func newSummarizeCommand() *cobra.Command {
	summarizeCommand := &cobra.Command{
		Use:     summarizeUse,
		Short:   summarizeShortDescription,
		Long:    summarizeLongDescription,
		Example: summarizeUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, logger, buildErr := loadConfigurationAndLogger(command)
			if buildErr != nil {
				return buildErr
			}
			defer func() { _ = logger.Sync() }()

			service := buildService(configuration, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, summarizeErr := service.Summarize(ctx, arguments[0])
			if summarizeErr != nil {
				return summarizeErr
			}

			encoded, encodeErr := json.MarshalIndent(result, "", "  ")
			if encodeErr != nil {
				return encodeErr
			}
			fmt.Fprintln(command.OutOrStdout(), string(encoded))

			if copyRequested, _ := command.Flags().GetBool(clipboardFlagName); copyRequested {
				if copyErr := clipboard.NewService().Copy(string(encoded)); copyErr != nil {
					logger.Warn("clipboard copy failed", zap.Error(copyErr))
				}
			}
			return nil
		},
	}
	summarizeCommand.Flags().Bool(clipboardFlagName, false, clipboardFlagUsage)
	return summarizeCommand
}

func loadConfigurationAndLogger(command *cobra.Command) (config.Configuration, *zap.Logger, error) {
	configFilePath, _ := command.Flags().GetString(configFlagName)
	configuration, loadErr := config.Load(config.LoadOptions{ExplicitFilePath: configFilePath})
	if loadErr != nil {
		return config.Configuration{}, nil, loadErr
	}
	logger, loggerErr := utils.NewApplicationLogger()
	if loggerErr != nil {
		return config.Configuration{}, nil, loggerErr
	}
	return configuration, logger, nil
}

func buildService(configuration config.Configuration, logger *zap.Logger) *summarize.Service {
	gitHubClient := github.NewClient(nil).
		WithAPIBase(configuration.GitHubAPIBaseURL).
		WithRawBase(configuration.GitHubRawBaseURL).
		WithTimeout(configuration.GitHubTimeout).
		WithAuthorizationToken(configuration.GitHubToken).
		WithMaxFileBytes(configuration.MaxFileSizeBytes).
		WithConcurrency(configuration.FetchConcurrency)

	completer := llm.NewClient(llm.Config{
		BaseURL:     configuration.LLMBaseURL,
		APIKey:      configuration.LLMAPIKey,
		Model:       configuration.LLMModel,
		Temperature: configuration.LLMTemperature,
		MaxTokens:   configuration.LLMMaxTokens,
		Timeout:     configuration.LLMTimeout,
	})

	tokenCounter, counterErr := tokenizer.NewCounter(configuration.TokenizerModel)
	if counterErr != nil {
		logger.Warn(tokenizerUnavailableMessage, zap.Error(counterErr))
		tokenCounter = nil
	}

	limits := contextbuild.Limits{
		MaxContextChars: configuration.MaxContextChars,
		MaxTreeLines:    configuration.MaxTreeLines,
		MaxFileLines:    configuration.MaxFileLines,
	}
	return summarize.NewService(gitHubClient, completer, tokenCounter, limits, logger)
}
