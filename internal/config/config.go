package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the analysis-run cache backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite | postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// DataConfig points at the market dataset files.
type DataConfig struct {
	MarketDataPath string `yaml:"market_data_path" mapstructure:"market_data_path"`
	MarketDataDir  string `yaml:"market_data_dir" mapstructure:"market_data_dir"`
	StandardsPath  string `yaml:"standards_path" mapstructure:"standards_path"`
}

// ScoringConfig holds the base weight vector and calibration knobs. The
// calibration constants are tunable parameters, not contracts.
type ScoringConfig struct {
	SalaryWeight   float64 `yaml:"salary_weight" mapstructure:"salary_weight"`
	NoticeWeight   float64 `yaml:"notice_weight" mapstructure:"notice_weight"`
	BenefitsWeight float64 `yaml:"benefits_weight" mapstructure:"benefits_weight"`
	ClausesWeight  float64 `yaml:"clauses_weight" mapstructure:"clauses_weight"`
	LegalWeight    float64 `yaml:"legal_weight" mapstructure:"legal_weight"`

	HighBondThreshold  float64 `yaml:"high_bond_threshold" mapstructure:"high_bond_threshold"`
	ToxicBondThreshold float64 `yaml:"toxic_bond_threshold" mapstructure:"toxic_bond_threshold"`

	// Minimum document length before an undetected PF/gratuity benefit is
	// treated as confirmed absent rather than unknown.
	AbsenceTextThreshold int `yaml:"absence_text_threshold" mapstructure:"absence_text_threshold"`
}

// AnthropicConfig holds settings for the optional LLM fallback extractor
// and narrator.
type AnthropicConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	Model          string  `yaml:"model" mapstructure:"model"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerMin float64 `yaml:"requests_per_min" mapstructure:"requests_per_min"`
}

// ServerConfig configures the HTTP analyze endpoint.
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
	v.SetEnvPrefix("FAIRDEAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "fairdeal.db")
	v.SetDefault("data.market_data_path", "data/market_data.json")
	v.SetDefault("data.market_data_dir", "data/market_data")
	v.SetDefault("data.standards_path", "data/industry_standards.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("scoring.salary_weight", 0.35)
	v.SetDefault("scoring.notice_weight", 0.20)
	v.SetDefault("scoring.benefits_weight", 0.20)
	v.SetDefault("scoring.clauses_weight", 0.15)
	v.SetDefault("scoring.legal_weight", 0.10)
	v.SetDefault("scoring.high_bond_threshold", 200000)
	v.SetDefault("scoring.toxic_bond_threshold", 300000)
	v.SetDefault("scoring.absence_text_threshold", 2000)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.timeout_secs", 30)
	v.SetDefault("anthropic.requests_per_min", 15)

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
