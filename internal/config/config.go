package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	LinksFile  string `mapstructure:"links_file"`
	OutputDir  string `mapstructure:"output_dir"`
	FilePrefix string `mapstructure:"file_prefix"`

	SourceLang string `mapstructure:"source_lang"`
	TargetLang string `mapstructure:"target_lang"`
	ChunkLimit int    `mapstructure:"chunk_limit"`

	UserAgent           string        `mapstructure:"user_agent"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	FetchRatePerSecond  float64       `mapstructure:"fetch_rate_per_second"`
	FetchBurst          int           `mapstructure:"fetch_burst"`

	PublishersFile string `mapstructure:"publishers_file"`
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Load reads configuration from environment variables and config files.
// Defaults mirror the constants the archiver shipped with originally.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "qiita-archiver")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("links_file", "./docs/README.md")
	v.SetDefault("output_dir", "./docs")
	v.SetDefault("file_prefix", "qiita_")
	v.SetDefault("source_lang", "ja")
	v.SetDefault("target_lang", "zh-TW")
	v.SetDefault("chunk_limit", 3500)
	v.SetDefault("user_agent", defaultUserAgent)
	v.SetDefault("fetch_timeout_seconds", 30)
	v.SetDefault("fetch_rate_per_second", 2.0)
	v.SetDefault("fetch_burst", 1)
	v.SetDefault("publishers_file", "./configs/publishers.yaml")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.LinksFile == "" {
		return nil, fmt.Errorf("links_file must not be empty")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("output_dir must not be empty")
	}
	if cfg.SourceLang == "" || cfg.TargetLang == "" {
		return nil, fmt.Errorf("source_lang and target_lang must not be empty")
	}
	if cfg.ChunkLimit <= 0 {
		return nil, fmt.Errorf("invalid chunk_limit (must be positive)")
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	if cfg.FetchRatePerSecond <= 0 {
		return nil, fmt.Errorf("invalid fetch_rate_per_second (must be positive)")
	}
	if cfg.FetchBurst <= 0 {
		cfg.FetchBurst = 1
	}

	return &cfg, nil
}
