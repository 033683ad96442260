package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv          = "ARTICLE_BROWSER_CONFIG"
	databaseDSNEnv         = "DATABASE_DSN"
	chatGPTAPIKeyEnv       = "CHATGPT_API_KEY"
	chatGPTModelEnv        = "CHATGPT_MODEL"
	translationAPIKeyEnv   = "TRANSLATION_API_KEY"
	defaultPreferencesFile = ".articlebrowser/preferences.yaml"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging     LoggingConfig                `yaml:"logging"`
	Browser     BrowserConfig                `yaml:"browser"`
	Fields      FieldsConfig                 `yaml:"fields"`
	Languages   map[string][]BatchSpecConfig `yaml:"languages" validate:"dive,keys,required,endkeys,dive"`
	Database    DatabaseConfig               `yaml:"database"`
	Preferences PreferencesConfig            `yaml:"preferences"`
	Translation TranslationConfig            `yaml:"translation"`
}

// LoggingConfig sets the slog level.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=error warn warning info debug"`
}

// BrowserConfig tunes the interactive session.
type BrowserConfig struct {
	PageSize     int           `yaml:"pageSize" validate:"min=1,max=1000"`
	LevelCatalog string        `yaml:"levelCatalog" validate:"oneof=fixed observed"`
	RangePolicy  string        `yaml:"rangePolicy" validate:"oneof=strict permissive"`
	Debounce     time.Duration `yaml:"debounce" validate:"min=0"`
	CatalogPath  string        `yaml:"catalogPath"`
	Colors       bool          `yaml:"colors"`
}

// FieldsConfig names the raw columns records are read from.
type FieldsConfig struct {
	ID                string   `yaml:"id" validate:"required"`
	Title             string   `yaml:"title" validate:"required"`
	Summary           string   `yaml:"summary" validate:"required"`
	TranslatedSummary []string `yaml:"translatedSummary" validate:"min=1,dive,required"`
	Level             string   `yaml:"level" validate:"required"`
	Range             string   `yaml:"range" validate:"required"`
	Link              string   `yaml:"link" validate:"required"`
	Language          string   `yaml:"language"`
}

// BatchSpecConfig is one data file (or table) contributing to a language.
type BatchSpecConfig struct {
	Format   string            `yaml:"format" validate:"omitempty,oneof=csv html postgres"`
	Location string            `yaml:"location"`
	Options  map[string]string `yaml:"options"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// PreferencesConfig points at the dark-mode preference file.
type PreferencesConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// TranslationConfig drives the enrich command.
type TranslationConfig struct {
	SourceLanguage  string        `yaml:"sourceLanguage"`
	TargetLanguage  string        `yaml:"targetLanguage" validate:"required"`
	ChatGPT         ChatGPTConfig `yaml:"chatgpt"`
	Fallback        ServiceConfig `yaml:"fallback"`
	MaxRetries      int           `yaml:"maxRetries" validate:"min=1,max=10"`
	Backoff         time.Duration `yaml:"backoff" validate:"min=0"`
	Pace            time.Duration `yaml:"pace" validate:"min=0"`
	MaxLength       int           `yaml:"maxLength" validate:"min=4"`
	CheckpointEvery int           `yaml:"checkpointEvery" validate:"min=0"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint" validate:"omitempty,url"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// ServiceConfig addresses a LibreTranslate-compatible service.
type ServiceConfig struct {
	URL    string `yaml:"url" validate:"omitempty,url"`
	APIKey string `yaml:"apiKey"`
}

// Load reads YAML configuration (if present) on top of defaults and applies
// environment overrides. An empty path falls back to ARTICLE_BROWSER_CONFIG.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks struct tags and reports every failing field.
func (c Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
	}
	sort.Strings(messages)
	return fmt.Errorf("config: invalid: %s", strings.Join(messages, "; "))
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.Translation.ChatGPT.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.Translation.ChatGPT.Model = v
	}

	if v := os.Getenv(translationAPIKeyEnv); v != "" {
		c.Translation.Fallback.APIKey = v
	}
}

func defaultConfig() Config {
	prefs := defaultPreferencesFile
	if home, err := os.UserHomeDir(); err == nil {
		prefs = home + string(os.PathSeparator) + defaultPreferencesFile
	}

	return Config{
		Logging: LoggingConfig{Level: "info"},
		Browser: BrowserConfig{
			PageSize:     50,
			LevelCatalog: "observed",
			RangePolicy:  "strict",
			Debounce:     300 * time.Millisecond,
			Colors:       true,
		},
		Fields: FieldsConfig{
			ID:                "id",
			Title:             "title",
			Summary:           "summary",
			TranslatedSummary: []string{"translated_summary", "english_summary"},
			Level:             "ilr_quantized",
			Range:             "ilr_range",
			Link:              "link",
			Language:          "language",
		},
		Preferences: PreferencesConfig{Path: prefs},
		Translation: TranslationConfig{
			SourceLanguage: "es",
			TargetLanguage: "en",
			ChatGPT: ChatGPTConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-4o-mini",
			},
			MaxRetries:      5,
			Backoff:         time.Second,
			Pace:            time.Second,
			MaxLength:       150,
			CheckpointEvery: 10,
		},
	}
}
