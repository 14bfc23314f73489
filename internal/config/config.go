// Package config loads deployment configuration from an optional YAML file,
// the environment, and a .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. Environment variables use the REPOLENS_ prefix with
// dots replaced by underscores (REPOLENS_GITHUB_TOKEN, REPOLENS_LLM_API_KEY).
const (
	keyListenAddress    = "listen_address"
	keyGitHubAPIBaseURL = "github.api_base_url"
	keyGitHubRawBaseURL = "github.raw_base_url"
	keyGitHubToken      = "github.token"
	keyGitHubTimeout    = "github.timeout_seconds"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMModel         = "llm.model"
	keyLLMTemperature   = "llm.temperature"
	keyLLMMaxTokens     = "llm.max_tokens"
	keyLLMTimeout       = "llm.timeout_seconds"
	keyMaxContextChars  = "context.max_chars"
	keyMaxTreeLines     = "context.max_tree_lines"
	keyMaxFileLines     = "context.max_file_lines"
	keyMaxFileSizeBytes = "context.max_file_size_bytes"
	keyFetchConcurrency = "context.fetch_concurrency"
	keyTokenizerModel   = "context.tokenizer_model"

	environmentPrefix = "REPOLENS"
	configFileName    = "repolens"
	configFileType    = "yaml"

	defaultListenAddress = "127.0.0.1:8000"
	defaultLLMBaseURL    = "https://api.tokenfactory.eu-west1.nebius.com/v1"
	defaultLLMModel      = "moonshotai/Kimi-K2.5"

	// Roughly four characters per token: 200K characters leaves headroom for
	// the system prompt and the response inside a 128K-token window.
	defaultMaxContextChars  = 200_000
	defaultMaxTreeLines     = 500
	defaultMaxFileLines     = 300
	defaultMaxFileSizeBytes = 512_000
	defaultFetchConcurrency = 10
	defaultTokenizerModel   = "gpt-4o"

	defaultGitHubTimeoutSeconds = 30
	defaultLLMTimeoutSeconds    = 120
	defaultLLMTemperature       = 0.3
	defaultLLMMaxTokens         = 8192
)

// Configuration holds every deployment-fixed setting of the service.
type Configuration struct {
	ListenAddress string

	GitHubAPIBaseURL string
	GitHubRawBaseURL string
	GitHubToken      string
	GitHubTimeout    time.Duration

	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float32
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	MaxContextChars  int
	MaxTreeLines     int
	MaxFileLines     int
	MaxFileSizeBytes int64
	FetchConcurrency int
	TokenizerModel   string
}

// LoadOptions controls configuration discovery.
type LoadOptions struct {
	// ExplicitFilePath points at a configuration file; when empty, a
	// repolens.yaml in the working directory is used if present.
	ExplicitFilePath string
}

// Load reads configuration with precedence: environment over file over
// defaults. A missing configuration file is not an error; a present but
// unreadable one is.
func Load(options LoadOptions) (Configuration, error) {
	// .env entries become part of the process environment before viper reads it.
	_ = godotenv.Load()

	loader := viper.New()
	loader.SetEnvPrefix(environmentPrefix)
	loader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	loader.AutomaticEnv()
	applyDefaults(loader)

	if options.ExplicitFilePath != "" {
		loader.SetConfigFile(options.ExplicitFilePath)
		if readErr := loader.ReadInConfig(); readErr != nil {
			return Configuration{}, fmt.Errorf("read configuration from %s: %w", options.ExplicitFilePath, readErr)
		}
	} else {
		loader.SetConfigName(configFileName)
		loader.SetConfigType(configFileType)
		loader.AddConfigPath(".")
		if readErr := loader.ReadInConfig(); readErr != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(readErr, &notFound) {
				return Configuration{}, fmt.Errorf("read configuration: %w", readErr)
			}
		}
	}

	return Configuration{
		ListenAddress:    loader.GetString(keyListenAddress),
		GitHubAPIBaseURL: loader.GetString(keyGitHubAPIBaseURL),
		GitHubRawBaseURL: loader.GetString(keyGitHubRawBaseURL),
		GitHubToken:      loader.GetString(keyGitHubToken),
		GitHubTimeout:    time.Duration(loader.GetInt(keyGitHubTimeout)) * time.Second,
		LLMBaseURL:       loader.GetString(keyLLMBaseURL),
		LLMAPIKey:        loader.GetString(keyLLMAPIKey),
		LLMModel:         loader.GetString(keyLLMModel),
		LLMTemperature:   float32(loader.GetFloat64(keyLLMTemperature)),
		LLMMaxTokens:     loader.GetInt(keyLLMMaxTokens),
		LLMTimeout:       time.Duration(loader.GetInt(keyLLMTimeout)) * time.Second,
		MaxContextChars:  loader.GetInt(keyMaxContextChars),
		MaxTreeLines:     loader.GetInt(keyMaxTreeLines),
		MaxFileLines:     loader.GetInt(keyMaxFileLines),
		MaxFileSizeBytes: loader.GetInt64(keyMaxFileSizeBytes),
		FetchConcurrency: loader.GetInt(keyFetchConcurrency),
		TokenizerModel:   loader.GetString(keyTokenizerModel),
	}, nil
}

func applyDefaults(loader *viper.Viper) {
	loader.SetDefault(keyListenAddress, defaultListenAddress)
	loader.SetDefault(keyGitHubAPIBaseURL, "")
	loader.SetDefault(keyGitHubRawBaseURL, "")
	loader.SetDefault(keyGitHubToken, "")
	loader.SetDefault(keyGitHubTimeout, defaultGitHubTimeoutSeconds)
	loader.SetDefault(keyLLMBaseURL, defaultLLMBaseURL)
	loader.SetDefault(keyLLMAPIKey, "")
	loader.SetDefault(keyLLMModel, defaultLLMModel)
	loader.SetDefault(keyLLMTemperature, defaultLLMTemperature)
	loader.SetDefault(keyLLMMaxTokens, defaultLLMMaxTokens)
	loader.SetDefault(keyLLMTimeout, defaultLLMTimeoutSeconds)
	loader.SetDefault(keyMaxContextChars, defaultMaxContextChars)
	loader.SetDefault(keyMaxTreeLines, defaultMaxTreeLines)
	loader.SetDefault(keyMaxFileLines, defaultMaxFileLines)
	loader.SetDefault(keyMaxFileSizeBytes, defaultMaxFileSizeBytes)
	loader.SetDefault(keyFetchConcurrency, defaultFetchConcurrency)
	loader.SetDefault(keyTokenizerModel, defaultTokenizerModel)
}
