package commands

import (
	"time"

	"branchscan/internal/scrapers/kfc"
)

type KFCConfig struct {
	BranchesURL string   `json:"branches_url"`
	SiteURL     string   `json:"site_url"`
	APIHost     string   `json:"api_host"`
	Endpoints   []string `json:"endpoints"`
}

type ChartsConfig struct {
	DataDir   string `json:"data_dir"`
	ChartsDir string `json:"charts_dir"`
}

type Config struct {
	UserAgent         string  `json:"user_agent"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	BypassCloudflare  bool    `json:"bypass_cloudflare"`
	// Database is the archive every run is saved to, --db overrides it.
	Database string       `json:"database"`
	KFC      KFCConfig    `json:"kfc"`
	Charts   ChartsConfig `json:"charts"`
}

func defaultConfig() Config {
	opts := kfc.DefaultOptions()
	return Config{
		UserAgent:         opts.UserAgent,
		TimeoutSeconds:    int(opts.Timeout / time.Second),
		RequestsPerSecond: opts.RequestsPerSecond,
		KFC: KFCConfig{
			BranchesURL: opts.BranchesURL,
			SiteURL:     opts.SiteURL,
			APIHost:     opts.APIHost,
			Endpoints:   opts.Endpoints,
		},
		Charts: ChartsConfig{
			DataDir:   "data",
			ChartsDir: "charts",
		},
	}
}

func (c Config) kfcOptions() kfc.Options {
	opts := kfc.DefaultOptions()
	opts.BranchesURL = c.KFC.BranchesURL
	opts.SiteURL = c.KFC.SiteURL
	opts.APIHost = c.KFC.APIHost
	opts.Endpoints = c.KFC.Endpoints
	opts.UserAgent = c.UserAgent
	opts.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	opts.RequestsPerSecond = c.RequestsPerSecond
	opts.BypassCloudflare = c.BypassCloudflare
	return opts
}
