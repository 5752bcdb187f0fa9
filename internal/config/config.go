package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"

	configPathEnv       = "NEWSPLATTER_CONFIG"
	profilesPathEnv     = "NEWSPLATTER_PROFILES"
	logLevelEnv         = "LOG_LEVEL"
	logFormatEnv        = "LOG_FORMAT"
	openAIKeyEnv        = "OPENAI_API_KEY"
	geminiKeyEnv        = "GEMINI_API_KEY"
	aiURLEnv            = "AI_URL"
	newsURLEnv          = "NEWS_API_URL"
	feedURLSuffix       = "_API_URL"
	storageBackendEnv   = "STORAGE_BACKEND"
	firebaseCredEnv     = "FIREBASE_CREDENTIAL_PATH"
	firebaseProjectEnv  = "FIREBASE_PROJECT_ID"
	databaseDSNEnv      = "DATABASE_DSN"
	pushURLEnv          = "PUSH_FUNCTION_URL"
	firebaseFunctionEnv = "FIREBASE_FUNCTION_URL"
)

// LLM providers.
const (
	ProviderChatGPT = "chatgpt"
	ProviderEino    = "eino"
	ProviderGemini  = "gemini"
)

// Storage backends.
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging      LoggingConfig   `yaml:"logging"`
	News         NewsConfig      `yaml:"news"`
	Selector     LLMConfig       `yaml:"selector"`
	Writer       LLMConfig       `yaml:"writer"`
	Storage      StorageConfig   `yaml:"storage"`
	Push         PushConfig      `yaml:"push"`
	Pipeline     PipelineConfig  `yaml:"pipeline"`
	Scheduler    SchedulerConfig `yaml:"scheduler"`
	ProfilesFile string          `yaml:"profilesFile"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewsConfig points at the paginated news feed. URLs overrides the default
// per country code.
type NewsConfig struct {
	DefaultURL string            `yaml:"defaultUrl"`
	URLs       map[string]string `yaml:"urls"`
}

// LLMConfig defines how to contact one language model.
type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Endpoint string        `yaml:"endpoint"`
	BaseURL  string        `yaml:"baseUrl"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
	RPM      int           `yaml:"rpm"`
	Burst    int           `yaml:"burst"`
}

// StorageConfig picks the document store backend.
type StorageConfig struct {
	Backend   string          `yaml:"backend"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Postgres  PostgresConfig  `yaml:"postgres"`
}

// FirestoreConfig describes the Firebase project.
type FirestoreConfig struct {
	ProjectID       string `yaml:"projectId"`
	CredentialsFile string `yaml:"credentialsFile"`
}

// PostgresConfig describes Postgres connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// PushConfig wires the push-notification webhook.
type PushConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Header   string        `yaml:"header"`
	Timeout  time.Duration `yaml:"timeout"`
}

// PipelineConfig bounds the two worker pools.
type PipelineConfig struct {
	ArticleWorkers     int `yaml:"articleWorkers"`
	TranslationWorkers int `yaml:"translationWorkers"`
}

// SchedulerConfig defines when the jobs run.
type SchedulerConfig struct {
	PipelineCron     string         `yaml:"pipelineCron"`
	DailyPopularCron string         `yaml:"dailyPopularCron"`
	PushCron         string         `yaml:"pushCron"`
	Timezone         string         `yaml:"timezone"`
	Countries        []string       `yaml:"countries"`
	PushHours        int            `yaml:"pushHours"`
	location         *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.UTC
}

// FeedURL returns the news feed for a country code.
func (c Config) FeedURL(code string) string {
	if u := c.News.URLs[strings.ToLower(code)]; u != "" {
		return u
	}
	return c.News.DefaultURL
}

// Load reads YAML configuration (if present), the optional .env file and
// applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot read .env: %v", err)
	}

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides(os.Environ())
	cfg.bindTimezone()
	return cfg
}

func (c *Config) applyEnvOverrides(environ []string) {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && v != "" {
			env[k] = v
		}
	}

	if v := env[logLevelEnv]; v != "" {
		c.Logging.Level = v
	}
	if v := env[logFormatEnv]; v != "" {
		c.Logging.Format = v
	}
	if v := env[profilesPathEnv]; v != "" {
		c.ProfilesFile = v
	}

	if v := env[newsURLEnv]; v != "" {
		c.News.DefaultURL = v
	}
	for k, v := range env {
		if k == newsURLEnv || !strings.HasSuffix(k, feedURLSuffix) {
			continue
		}
		if c.News.URLs == nil {
			c.News.URLs = map[string]string{}
		}
		c.News.URLs[strings.ToLower(strings.TrimSuffix(k, feedURLSuffix))] = v
	}

	if v := env[aiURLEnv]; v != "" {
		c.Selector.Endpoint = v
	}
	c.Selector.applyKeys(env[openAIKeyEnv], env[geminiKeyEnv])
	c.Writer.applyKeys(env[openAIKeyEnv], env[geminiKeyEnv])

	if v := env[storageBackendEnv]; v != "" {
		c.Storage.Backend = v
	}
	if v := env[firebaseCredEnv]; v != "" {
		c.Storage.Firestore.CredentialsFile = v
	}
	if v := env[firebaseProjectEnv]; v != "" {
		c.Storage.Firestore.ProjectID = v
	}
	if v := env[databaseDSNEnv]; v != "" {
		c.Storage.Postgres.DSN = v
	}

	if v := env[firebaseFunctionEnv]; v != "" {
		c.Push.Endpoint = v
	}
	if v := env[pushURLEnv]; v != "" {
		c.Push.Endpoint = v
	}
}

// applyKeys assigns the provider key matching the configured provider.
func (l *LLMConfig) applyKeys(openAIKey, geminiKey string) {
	switch l.Provider {
	case ProviderGemini:
		if geminiKey != "" {
			l.APIKey = geminiKey
		}
	default:
		if openAIKey != "" {
			l.APIKey = openAIKey
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Selector: LLMConfig{
			Provider: ProviderChatGPT,
			Endpoint: "https://api.openai.com/v1/chat/completions",
			BaseURL:  "https://api.openai.com/v1",
			Model:    "gpt-4.1",
			Timeout:  60 * time.Second,
		},
		Writer: LLMConfig{
			Provider: ProviderGemini,
			Model:    "gemini-2.5-flash",
			Timeout:  60 * time.Second,
		},
		Storage: StorageConfig{Backend: BackendFirestore},
		Push: PushConfig{
			Header:  "News Platter",
			Timeout: 10 * time.Second,
		},
		Pipeline: PipelineConfig{ArticleWorkers: 5, TranslationWorkers: 5},
		Scheduler: SchedulerConfig{
			PipelineCron:     "0 * * * *",
			DailyPopularCron: "10 0 * * *",
			PushCron:         "0 9,18 * * *",
			Timezone:         defaultTimezone,
			PushHours:        6,
			location:         time.UTC,
		},
	}
}

// Task names what the process is about to do, for validation.
type Task string

const (
	TaskRun      Task = "run"
	TaskPopular  Task = "popular"
	TaskPush     Task = "push"
	TaskSchedule Task = "schedule"
)

// ConfigError reports a missing or invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks that everything task needs for country code is present.
// All problems are joined into one error.
func (c Config) Validate(task Task, code string) error {
	var errs []error
	missing := func(field, what string) {
		errs = append(errs, &ConfigError{Field: field, Message: what + " is required"})
	}

	switch c.Storage.Backend {
	case BackendFirestore:
		if c.Storage.Firestore.CredentialsFile == "" && c.Storage.Firestore.ProjectID == "" {
			missing("storage.firestore", "a credentials file ("+firebaseCredEnv+") or project id")
		}
	case BackendPostgres:
		if c.Storage.Postgres.DSN == "" {
			missing("storage.postgres.dsn", databaseDSNEnv)
		}
	case BackendMemory:
	default:
		errs = append(errs, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", c.Storage.Backend)})
	}

	if task == TaskRun || task == TaskSchedule {
		errs = append(errs, c.Selector.validate("selector")...)
		errs = append(errs, c.Writer.validate("writer")...)
		if task == TaskRun && c.FeedURL(code) == "" {
			missing("news.urls."+code, newsURLEnv+" or "+strings.ToUpper(code)+feedURLSuffix)
		}
	}
	if (task == TaskPush || task == TaskSchedule) && c.Push.Endpoint == "" {
		missing("push.endpoint", pushURLEnv)
	}
	return errors.Join(errs...)
}

func (l LLMConfig) validate(field string) []error {
	var errs []error
	if l.APIKey == "" {
		key := openAIKeyEnv
		if l.Provider == ProviderGemini {
			key = geminiKeyEnv
		}
		errs = append(errs, &ConfigError{Field: field + ".apiKey", Message: key + " is required"})
	}
	if l.Model == "" {
		errs = append(errs, &ConfigError{Field: field + ".model", Message: "model is required"})
	}
	if (l.Provider == "" || l.Provider == ProviderChatGPT) && l.Endpoint == "" {
		errs = append(errs, &ConfigError{Field: field + ".endpoint", Message: aiURLEnv + " is required"})
	}
	return errs
}
