package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".dumdum"
	envPrefix  = "DUMDUM"

	KeySessionsPath = "paths.sessions"
	KeyWalletsPath  = "paths.wallets"
	KeySecretsPath  = "paths.secrets"
	KeyPassBinary   = "paths.pass_binary"
	KeyWallet       = "wallet.address"

	KeyMessengerURL = "ao.mu_url"
	KeyComputeURL   = "ao.cu_url"
	KeyGatewayURL   = "ao.gateway_url"
	KeyModule       = "ao.module"
	KeyScheduler    = "ao.scheduler"
	KeyAuthority    = "ao.authority"
	KeySubmitRPS    = "ao.submit_rps"
	KeySubmitBurst  = "ao.submit_burst"
	KeyHTTPTimeout  = "ao.http_timeout"

	KeyMainProcess      = "processes.main"
	KeyArbitrageProcess = "processes.arbitrage"
	KeyFaucetProcess    = "processes.faucet"

	KeyTokens = "tokens"
)

// NewConfig reads ~/.dumdum/config.toml on top of the built-in defaults.
// Every key can be overridden with a DUMDUM_ environment variable, dots
// replaced by underscores (DUMDUM_AO_CU_URL).
func NewConfig(homeDir string) (*viper.Viper, error) {
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
	}

	cfg := viper.New()
	dir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	applyDefaults(cfg, dir)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func applyDefaults(cfg *viper.Viper, dir string) {
	cfg.SetDefault(KeySessionsPath, filepath.Join(dir, sessionFile))
	cfg.SetDefault(KeyWalletsPath, filepath.Join(dir, walletsFile))
	cfg.SetDefault(KeySecretsPath, filepath.Join(dir, "secrets"))
	cfg.SetDefault(KeyPassBinary, "pass")
	cfg.SetDefault(KeyWallet, "")

	cfg.SetDefault(KeyMessengerURL, "https://mu.ao-testnet.xyz")
	cfg.SetDefault(KeyComputeURL, "https://cu.ao-testnet.xyz")
	cfg.SetDefault(KeyGatewayURL, "https://arweave.net")
	cfg.SetDefault(KeyModule, "33d-3X8mpv6xYBIVB-eXMrPfH5Kzf6HiwhcvOUA10sw")
	cfg.SetDefault(KeyScheduler, "_GQ33BkPtZrqxA84vM8Zk-N2aO0toNNu_C-l-rawrBA")
	cfg.SetDefault(KeyAuthority, "fcoN_xJeisVsPXA-trzVAuIiqO3ydLQxM-L4XbrQKzY")
	cfg.SetDefault(KeySubmitRPS, 5.0)
	cfg.SetDefault(KeySubmitBurst, 5)
	cfg.SetDefault(KeyHTTPTimeout, "60s")

	cfg.SetDefault(KeyMainProcess, "cJPw5sw8U0wWxoXuW0Ikb1HFw1em7-6seHxP9CSJTgU")
	cfg.SetDefault(KeyArbitrageProcess, "_jmonJXkCMYUL-Es7gRWJ7FfJtNW_8itCKRIQ89IXLs")
	cfg.SetDefault(KeyFaucetProcess, "yoNtlglzbxbwmRGECmSLX4q-lpEpUpbhSLkX8qlKXmo")

	cfg.SetDefault(KeyTokens, map[string]string{
		"STAR1": "lvfxYbBRqmWpNWcMaor7aEIA4_CiOQCfLnT2ymzDX84",
		"STAR2": "Yv5NjWA1zCFNNSksDc6yNUC3pdaMh6jNHCKUPIUhdWE",
		"STAR3": "R7CR9GicDSk1_PAzXP0kwbSyrgBzWBeOg",
	})
}

// Tokens returns the configured token symbols mapped to process ids.
// Symbols are upper-cased since viper folds keys to lower case.
func Tokens(cfg *viper.Viper) map[string]string {
	raw := cfg.GetStringMapString(KeyTokens)
	out := make(map[string]string, len(raw))
	for symbol, address := range raw {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		address = strings.TrimSpace(address)
		if symbol == "" || address == "" {
			continue
		}
		out[symbol] = address
	}

	return out
}

// ConfigDir is where config.toml and the state files live by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, configDir)
}
