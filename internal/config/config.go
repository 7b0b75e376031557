package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Search struct {
		Query    string `yaml:"query" default:"Data Analyst hiring"`
		MaxPosts int    `yaml:"max_posts" default:"40"`
	} `yaml:"search"`

	Browser struct {
		UserAgent         string        `yaml:"user_agent"`
		HeadlessMode      bool          `yaml:"headless_mode" default:"true"`
		StealthMode       bool          `yaml:"stealth_mode" default:"true"`
		StatePath         string        `yaml:"state_path" default:"storage_state.json"`
		NavigationTimeout time.Duration `yaml:"navigation_timeout" default:"30s"`
		SearchTimeout     time.Duration `yaml:"search_timeout" default:"45s"`
		SelectorTimeout   time.Duration `yaml:"selector_timeout" default:"8s"`
		FieldTimeout      time.Duration `yaml:"field_timeout" default:"2s"`
	} `yaml:"browser"`

	Login struct {
		Email            string        `yaml:"email"`
		Password         string        `yaml:"password"`
		FieldTimeout     time.Duration `yaml:"field_timeout" default:"15s"`
		FeedWait         time.Duration `yaml:"feed_wait" default:"30s"`
		CheckpointWait   time.Duration `yaml:"checkpoint_wait" default:"20s"`
		LandmarkWait     time.Duration `yaml:"landmark_wait" default:"15s"`
		InteractiveGrace time.Duration `yaml:"interactive_grace" default:"120s"`
	} `yaml:"login"`

	LLM struct {
		Provider    string        `yaml:"provider" default:"ollama"`
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url" default:"http://localhost:11434"`
		Model       string        `yaml:"model" default:"llama3"`
		Temperature float32       `yaml:"temperature" default:"0.1"`
		Timeout     time.Duration `yaml:"timeout" default:"60s"`
		RateLimit   int           `yaml:"rate_limit" default:"60"` // requests per minute
	} `yaml:"llm"`

	Storage struct {
		OutputPath string `yaml:"output_path" default:"linkedin_data_analyst_posts.xlsx"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"text"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Search.Query = "Data Analyst hiring"
	config.Search.MaxPosts = 40

	config.Browser.HeadlessMode = true
	config.Browser.StealthMode = true
	config.Browser.StatePath = "storage_state.json"
	config.Browser.NavigationTimeout = 30 * time.Second
	config.Browser.SearchTimeout = 45 * time.Second
	config.Browser.SelectorTimeout = 8 * time.Second
	config.Browser.FieldTimeout = 2 * time.Second
	config.Browser.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	config.Login.FieldTimeout = 15 * time.Second
	config.Login.FeedWait = 30 * time.Second
	config.Login.CheckpointWait = 20 * time.Second
	config.Login.LandmarkWait = 15 * time.Second
	config.Login.InteractiveGrace = 120 * time.Second

	config.LLM.Provider = "ollama"
	config.LLM.BaseURL = "http://localhost:11434"
	config.LLM.Model = "llama3"
	config.LLM.Temperature = 0.1
	config.LLM.Timeout = 60 * time.Second
	config.LLM.RateLimit = 60

	config.Storage.OutputPath = "linkedin_data_analyst_posts.xlsx"

	config.Logging.Level = "info"
	config.Logging.Format = "text"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if email := os.Getenv("LINKEDIN_EMAIL"); email != "" {
		c.Login.Email = email
	}

	if password := os.Getenv("LINKEDIN_PASSWORD"); password != "" {
		c.Login.Password = password
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		c.LLM.BaseURL = host
	}

	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if rateLimit := os.Getenv("LLM_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.LLM.RateLimit = n
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
