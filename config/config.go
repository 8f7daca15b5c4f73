package config

import (
	"github.com/spf13/viper"

	"ic-swap/pkg/swap"
	"ic-swap/pkg/tokens"
)

// Config holds the application configuration
type Config struct {
	ICHost             string
	IdentityPEMPath    string
	RegistryURL        string
	KongSwapCanisterID string
	ICPSwapFactoryID   string
	FetchRootKey       bool
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".ic-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("ic_host", "https://icp-api.io")
	viper.SetDefault("registry_url", tokens.DefaultRegistryURL)
	viper.SetDefault("kongswap_canister_id", swap.DefaultKongSwapCanisterID)
	viper.SetDefault("icpswap_factory_id", swap.DefaultICPSwapFactoryID)
	viper.SetDefault("fetch_root_key", false)

	// Read from environment variables
	viper.SetEnvPrefix("IC_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	// An empty identity path means calls go out anonymously, which is
	// enough for queries but not for swaps.
	cfg := &Config{
		ICHost:             viper.GetString("ic_host"),
		IdentityPEMPath:    viper.GetString("identity_pem_path"),
		RegistryURL:        viper.GetString("registry_url"),
		KongSwapCanisterID: viper.GetString("kongswap_canister_id"),
		ICPSwapFactoryID:   viper.GetString("icpswap_factory_id"),
		FetchRootKey:       viper.GetBool("fetch_root_key"),
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, _ := Load()
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
