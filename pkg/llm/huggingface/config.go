package huggingface

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lisanmuaddib/expander-go/pkg/llm"
	"github.com/sirupsen/logrus"
)

// DefaultRepoID is the model used when HUGGINGFACE_REPO_ID is unset.
// Other free instruct models (e.g. mistralai/Mistral-7B-Instruct-v0.1)
// work behind the same endpoint shape.
const DefaultRepoID = "HuggingFaceH4/zephyr-7b-beta"

type HuggingFaceConfig struct {
	// API Authentication
	APIToken string

	// API Endpoints
	BaseURL string
	RepoID  string

	// Generation defaults
	Temperature float64
	MaxTokens   int

	// Request handling
	Timeout       time.Duration
	RateLimit     int // requests allowed per RateWindow
	RateWindow    int // window length in minutes
	RetryAttempts int

	// General Config
	Logger *logrus.Logger
}

// NewHuggingFaceConfig creates a config from environment variables. The
// token is checked here so a missing credential fails before any network
// call is attempted.
func NewHuggingFaceConfig() (*HuggingFaceConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist in production
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	rateLimit, _ := strconv.Atoi(getEnvOrDefault("HUGGINGFACE_RATE_LIMIT", "60"))
	rateWindow, _ := strconv.Atoi(getEnvOrDefault("HUGGINGFACE_RATE_WINDOW", "1"))
	retryAttempts, _ := strconv.Atoi(getEnvOrDefault("HUGGINGFACE_RETRY_ATTEMPTS", "3"))
	timeoutSecs, _ := strconv.Atoi(getEnvOrDefault("HUGGINGFACE_TIMEOUT_SECONDS", "30"))

	config := &HuggingFaceConfig{
		APIToken: os.Getenv("HUGGINGFACEHUB_API_TOKEN"),

		BaseURL: getEnvOrDefault("HUGGINGFACE_API_BASE_URL", "https://api-inference.huggingface.co/models"),
		RepoID:  getEnvOrDefault("HUGGINGFACE_REPO_ID", DefaultRepoID),

		Temperature: 0.7,
		MaxTokens:   256,

		Timeout:       time.Duration(timeoutSecs) * time.Second,
		RateLimit:     rateLimit,
		RateWindow:    rateWindow,
		RetryAttempts: retryAttempts,

		Logger: logrus.New(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *HuggingFaceConfig) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if c.APIToken == "" {
		return llm.NewLLMError(llm.ErrCodeAuthentication,
			"HUGGINGFACEHUB_API_TOKEN is not set", nil, ProviderName)
	}
	// Set default values if not provided
	if c.BaseURL == "" {
		c.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if c.RepoID == "" {
		c.RepoID = DefaultRepoID
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 256
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 60
	}
	if c.RateWindow <= 0 {
		c.RateWindow = 1
	}
	if c.RetryAttempts < 0 {
		c.RetryAttempts = 0
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
