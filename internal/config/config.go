package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Bank providers.
const (
	ProviderMock  = "mock"
	ProviderPlaid = "plaid"
	ProviderOFX   = "ofx"
)

// Config is the fully resolved application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	AI      AIConfig      `mapstructure:"ai"`
	Bank    BankConfig    `mapstructure:"bank"`
	Plaid   PlaidConfig   `mapstructure:"plaid"`
}

// StorageConfig selects where the budget blobs live.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AIConfig paces the keyword model and the training simulator.
type AIConfig struct {
	InferenceDelay time.Duration `mapstructure:"inference_delay"`
	EpochDelay     time.Duration `mapstructure:"epoch_delay"`
	AutoTrainDelay time.Duration `mapstructure:"auto_train_delay"`
	AutoTrain      bool          `mapstructure:"auto_train"`
}

// BankConfig selects the bank source used by connect and sync.
type BankConfig struct {
	Provider     string        `mapstructure:"provider"`
	OFXFile      string        `mapstructure:"ofx_file"`
	ConnectDelay time.Duration `mapstructure:"connect_delay"`
}

// PlaidConfig holds Plaid API credentials.
type PlaidConfig struct {
	ClientID     string `mapstructure:"client_id"`
	Secret       string `mapstructure:"secret"`
	Environment  string `mapstructure:"environment"`
	AccessToken  string `mapstructure:"access_token"`
	LookbackDays int    `mapstructure:"lookback_days"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", "$HOME/.local/share/budget/budget.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("ai.inference_delay", 100*time.Millisecond)
	v.SetDefault("ai.epoch_delay", 100*time.Millisecond)
	v.SetDefault("ai.auto_train", true)
	v.SetDefault("ai.auto_train_delay", 2*time.Second)

	v.SetDefault("bank.provider", ProviderMock)
	v.SetDefault("bank.connect_delay", 2*time.Second)

	v.SetDefault("plaid.environment", "sandbox")
	v.SetDefault("plaid.lookback_days", 30)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Bank.OFXFile = ExpandPath(cfg.Bank.OFXFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendBolt:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for %s", common.ErrMissingConfig, c.Storage.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: storage.backend %q", common.ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.Bank.Provider {
	case ProviderMock, ProviderPlaid:
	case ProviderOFX:
		if c.Bank.OFXFile == "" {
			return fmt.Errorf("%w: bank.ofx_file is required for the ofx provider", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: bank.provider %q", common.ErrInvalidConfig, c.Bank.Provider)
	}

	if c.AI.InferenceDelay < 0 || c.AI.EpochDelay < 0 || c.AI.AutoTrainDelay < 0 || c.Bank.ConnectDelay < 0 {
		return fmt.Errorf("%w: delays cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
