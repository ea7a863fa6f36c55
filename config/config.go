package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int    `yaml:"log_level"`
	FeedURL  string `yaml:"feed_url"`

	Download  DownloadConfig  `yaml:"download"`
	Transcode TranscodeConfig `yaml:"transcode"`
	Storage   StorageConfig   `yaml:"storage"`
}

type DownloadConfig struct {
	// TimeoutMinutes bounds a single episode download end to end.
	TimeoutMinutes int    `yaml:"timeout_minutes"`
	UserAgent      string `yaml:"user_agent"`
}

type TranscodeConfig struct {
	// Bitrate passed to the encoder, e.g. "64k".
	Bitrate string `yaml:"bitrate"`
}

type StorageConfig struct {
	// OutputDir is where finished episode files land.
	OutputDir string `yaml:"output_dir"`

	// Archive options: when Bucket is set, finished episodes are mirrored
	// to Google Cloud Storage.
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

const defaultFeedURL = "https://feeds.podcastindex.org/pc20.xml"

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		FeedURL: defaultFeedURL,
		Download: DownloadConfig{
			TimeoutMinutes: 30,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
		Transcode: TranscodeConfig{Bitrate: "64k"},
		Storage:   StorageConfig{OutputDir: "."},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()

	// Unmarshal the YAML data over the defaults
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	if config.Download.TimeoutMinutes <= 0 {
		config.Download.TimeoutMinutes = 30
	}

	if config.Transcode.Bitrate == "" {
		config.Transcode.Bitrate = "64k"
	}

	if config.Storage.OutputDir == "" {
		config.Storage.OutputDir = "."
	}

	return config, nil
}
