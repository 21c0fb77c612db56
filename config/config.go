package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type GuildAppConfig struct {
	Home       string `mapstructure:"-"`
	ListenAddr string `mapstructure:"listen_addr"`
	IndexDB    string `mapstructure:"index_db"`
	LogLevel   string `mapstructure:"log_level"`
}

func NewGuildAppConfig(home string) *GuildAppConfig {
	return &GuildAppConfig{
		Home:       home,
		ListenAddr: "127.0.0.1:8547",
		IndexDB:    "indexer.db",
		LogLevel:   "info",
	}
}

type Config struct {
	RootDir string `mapstructure:"-"`

	App *GuildAppConfig `mapstructure:"app"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.guild")
	}
	config := &Config{
		RootDir: home,
		App:     NewGuildAppConfig(home),
	}
	_ = os.MkdirAll(home+"/config", 0o755)
	return config
}

// Load reads config.toml from the home directory over the defaults.
func Load(home string) (*Config, error) {
	cfg := DefaultConfig(home)
	viper.SetConfigFile(cfg.ConfigFile())
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.RootDir = home
	cfg.App.Home = home
	return cfg, nil
}

func (cfg *Config) ConfigFile() string {
	return filepath.Join(cfg.RootDir, "config", "config.toml")
}

func (cfg *Config) GenesisFile() string {
	return filepath.Join(cfg.RootDir, "config", "genesis.json")
}

func (cfg *Config) KeyFile() string {
	return filepath.Join(cfg.RootDir, "config", "member_key")
}

func (cfg *Config) IndexDBFile() string {
	return filepath.Join(cfg.RootDir, cfg.App.IndexDB)
}
