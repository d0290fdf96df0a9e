package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type RPCConfig struct {
	URL string `mapstructure:"url"`
}

type ExplorerConfig struct {
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"apiKey"`
	Concurrency int    `mapstructure:"concurrency"`
}

type ContractsConfig struct {
	StartBlock uint64 `mapstructure:"startBlock"`
	BlockWidth uint64 `mapstructure:"blockWidth"`
	OutputFile string `mapstructure:"outputFile"`
}

type PoolsConfig struct {
	URL          string `mapstructure:"url"`
	Network      string `mapstructure:"network"`
	Page         int    `mapstructure:"page"`
	PageSize     int    `mapstructure:"pageSize"`
	Sort         string `mapstructure:"sort"`
	RequestDelay int    `mapstructure:"requestDelay"`
	OutputFile   string `mapstructure:"outputFile"`
}

type Config struct {
	RPC       RPCConfig       `mapstructure:"rpc"`
	Explorer  ExplorerConfig  `mapstructure:"explorer"`
	Contracts ContractsConfig `mapstructure:"contracts"`
	Pools     PoolsConfig     `mapstructure:"pools"`
	Log       LogConfig       `mapstructure:"log"`
}

var Cfg Config

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil {
			// the whole config can come from flags and env vars
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("error reading config file, %s", err)
			}
		} else {
			viper.SetConfigName("secrets")
			if err := viper.MergeInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return fmt.Errorf("error loading secrets file: %v", err)
				}
			}
		}
	}

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}

// ValidateContracts checks everything the contracts pipeline needs before the
// first network call. Missing credentials fail here instead of mid-run.
func ValidateContracts(cfg *Config) error {
	if cfg.RPC.URL == "" {
		return fmt.Errorf("rpc.url is not set")
	}
	if cfg.Explorer.APIKey == "" {
		return fmt.Errorf("explorer.apiKey is not set")
	}
	return nil
}

func ValidatePools(cfg *Config) error {
	if cfg.Pools.Page < 1 {
		return fmt.Errorf("pools.page must be >= 1, got %d", cfg.Pools.Page)
	}
	if cfg.Pools.PageSize < 1 {
		return fmt.Errorf("pools.pageSize must be >= 1, got %d", cfg.Pools.PageSize)
	}
	return nil
}
