package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Assistant AssistantConfig `yaml:"assistant"`
	Enhancer  EnhancerConfig  `yaml:"enhancer"`
	Messenger MessengerConfig `yaml:"messenger"`

	// Secrets and connection settings come from the environment (.env),
	// never from config.yaml.
	OpenAIAPIKey          string `yaml:"-"`
	OpenAIAssistantID     string `yaml:"-"`
	MongoURI              string `yaml:"-"`
	MongoDBName           string `yaml:"-"`
	FBVerifyToken         string `yaml:"-"`
	FBAppSecret           string `yaml:"-"`
	KafkaBootstrapServers string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AssistantConfig holds the tunables of the assistant run-polling loop.
// The poll loop is bounded: MaxPollAttempts * PollIntervalMs is the longest
// a single turn will wait for the assistant before giving up.
type AssistantConfig struct {
	BaseURL         string `yaml:"base_url"`
	PollIntervalMs  int    `yaml:"poll_interval_ms"`
	MaxPollAttempts int    `yaml:"max_poll_attempts"`
	HistoryWindow   int    `yaml:"history_window"`
}

type EnhancerConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// MessengerConfig maps Facebook page ids to their page access tokens.
type MessengerConfig struct {
	PageAccessTokens map[string]string `yaml:"page_access_tokens"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIAssistantID = os.Getenv("OPENAI_ASSISTANT_ID")
	c.MongoURI = os.Getenv("DB_URI")
	c.MongoDBName = getEnv("MONGO_DB_NAME", "auth")
	c.FBVerifyToken = os.Getenv("FB_VERIFY_TOKEN")
	c.FBAppSecret = os.Getenv("FB_APP_SECRET")
	c.KafkaBootstrapServers = os.Getenv("KAFKA_BOOTSTRAP_SERVERS")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Assistant.BaseURL == "" {
		c.Assistant.BaseURL = "https://api.openai.com/v1"
	}
	if c.Assistant.PollIntervalMs <= 0 {
		c.Assistant.PollIntervalMs = 500
	}
	if c.Assistant.MaxPollAttempts <= 0 {
		c.Assistant.MaxPollAttempts = 120
	}
	if c.Assistant.HistoryWindow <= 0 {
		c.Assistant.HistoryWindow = 5
	}
	if c.Enhancer.Model == "" {
		c.Enhancer.Model = "gpt-4.1"
	}
	if c.Enhancer.MaxTokens <= 0 {
		c.Enhancer.MaxTokens = 1000
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
