package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is constructed
// once per run and passed by pointer; components never mutate it.
type Config struct {
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Validator ValidatorConfig `yaml:"validator" mapstructure:"validator"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Match     MatchConfig     `yaml:"match" mapstructure:"match"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SearchConfig configures a search run.
type SearchConfig struct {
	DefaultLocation string `yaml:"default_location" mapstructure:"default_location"`
	Limit           int    `yaml:"limit" mapstructure:"limit"`
	// Sources lists the source keys enabled for this run. "all" and
	// comma-separated selections are resolved against this list.
	Sources []string `yaml:"sources" mapstructure:"sources"`
	// UseFallback appends the curated school dataset on school searches,
	// independent of whether live sources succeeded.
	UseFallback bool `yaml:"use_fallback" mapstructure:"use_fallback"`
	// MinContactFields is the minimum number of populated contact fields
	// (name excluded) a record must carry to be kept.
	MinContactFields int `yaml:"min_contact_fields" mapstructure:"min_contact_fields"`
	// AllowEmptyContactSources lists source labels exempt from the
	// MinContactFields floor (thin directories returning name-only hits).
	AllowEmptyContactSources []string `yaml:"allow_empty_contact_sources" mapstructure:"allow_empty_contact_sources"`
	// VerifyWebsites enables the post-merge website discovery pass.
	VerifyWebsites bool `yaml:"verify_websites" mapstructure:"verify_websites"`
}

// ValidatorConfig configures the organization name validator.
type ValidatorConfig struct {
	MinLength int      `yaml:"min_length" mapstructure:"min_length"`
	MaxWords  int      `yaml:"max_words" mapstructure:"max_words"`
	Blacklist []string `yaml:"blacklist" mapstructure:"blacklist"`
}

// FetchConfig configures the shared HTTP fetch client.
type FetchConfig struct {
	// DelayMinMs/DelayMaxMs bound the random inter-request delay.
	DelayMinMs  int `yaml:"delay_min_ms" mapstructure:"delay_min_ms"`
	DelayMaxMs  int `yaml:"delay_max_ms" mapstructure:"delay_max_ms"`
	MaxRetries  int `yaml:"max_retries" mapstructure:"max_retries"`
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-request timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// DelayMin returns the minimum inter-request delay as a duration.
func (f FetchConfig) DelayMin() time.Duration {
	return time.Duration(f.DelayMinMs) * time.Millisecond
}

// DelayMax returns the maximum inter-request delay as a duration.
func (f FetchConfig) DelayMax() time.Duration {
	return time.Duration(f.DelayMaxMs) * time.Millisecond
}

// MatchConfig holds the name-similarity tunables used by enrichment.
// These are empirically chosen, not correctness invariants.
type MatchConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	ContainmentScore    float64 `yaml:"containment_score" mapstructure:"containment_score"`
}

// StoreConfig configures the run persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the results HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTACTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("search.default_location", "Dar es Salaam")
	v.SetDefault("search.limit", 50)
	v.SetDefault("search.sources", []string{
		"yellowpages", "google_maps", "facebook", "brela",
		"education_portal", "tanzapages", "shulezetu",
		"zoomtanzania", "schoolcotz",
	})
	v.SetDefault("search.use_fallback", true)
	v.SetDefault("search.min_contact_fields", 1)
	v.SetDefault("search.allow_empty_contact_sources", []string{
		"Tanzapages", "Shulezetu", "ZoomTanzania", "School.co.tz",
	})
	v.SetDefault("search.verify_websites", false)
	v.SetDefault("validator.min_length", 4)
	v.SetDefault("validator.max_words", 10)
	v.SetDefault("validator.blacklist", []string{
		"guide", "policy", "system", "registration", "register", "usajili",
		"mwongozo", "utoaji", "kuanzisha", "uhamisho", "taarifa",
		"mwanafunzi", "mradi", "assessment", "we are", "registered",
	})
	v.SetDefault("fetch.delay_min_ms", 300)
	v.SetDefault("fetch.delay_max_ms", 800)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("match.similarity_threshold", 0.6)
	v.SetDefault("match.containment_score", 0.95)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "contact-finder.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
