package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the struct that holds the configuration of the application
type Config struct {
	App        AppConfig        `json:"app"`
	Downloader DownloaderConfig `json:"downloader"`
	Archive    ArchiveConfig    `json:"archive"`
}

type AppConfig struct {
	Name     string `json:"name"`
	LogLevel int    `json:"logLevel"`
	Env      string `json:"env"`
}

type DownloaderConfig struct {
	URLFile        string `json:"urlFile"`
	UserAgent      string `json:"userAgent"`
	RequestTimeout int    `json:"requestTimeout"`
	DelayMs        int    `json:"delayMs"`
	BaseDir        string `json:"baseDir"`
}

type ArchiveConfig struct {
	Prefix string `json:"prefix"`
}

// Load config from config.json, with .env and environment overrides
func Load() (*Config, error) {
	// .env is optional, same as the config file
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("app.name", "assetfetch")
	v.SetDefault("app.logLevel", 4) // logrus.InfoLevel
	v.SetDefault("app.env", "development")
	v.SetDefault("downloader.urlFile", "urls.json")
	v.SetDefault("downloader.userAgent", "assetfetch/1.0")
	v.SetDefault("downloader.requestTimeout", 60)
	v.SetDefault("downloader.delayMs", 500)
	v.SetDefault("downloader.baseDir", ".")
	v.SetDefault("archive.prefix", "downloads")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override from environment variable if present
	if envFile := os.Getenv("ASSETFETCH_URL_FILE"); envFile != "" {
		config.Downloader.URLFile = envFile
	}

	return &config, nil
}

// Get config for app
func (c *Config) GetAppConfig() *AppConfig {
	return &c.App
}

// Get config for downloader
func (c *Config) GetDownloaderConfig() *DownloaderConfig {
	return &c.Downloader
}

// Get config for archive
func (c *Config) GetArchiveConfig() *ArchiveConfig {
	return &c.Archive
}
