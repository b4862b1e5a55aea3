package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	FeedURL         string `long:"feed-url" env:"FEED_URL" default:"https://ictransport.ru/rss-feed-827453696181.xml" description:"URL of the RSS feed to ingest"`
	SourceFile      string `long:"source-file" env:"SOURCE_FILE" default:"./source.yml" description:"YAML source profile with selectors and fallbacks (optional)"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"0" description:"Re-ingest interval in seconds (0 ingests once at startup)"`

	// Application configuration
	Port        string `long:"port" env:"PORT" default:"3000" description:"HTTP server port"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Turbo Items/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for dates (e.g., UTC, Europe/Moscow)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses flags and environment. It returns (nil, nil) when help was
// requested.
func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, err
	}

	cfg := &Cfg{
		FeedURL:         raw.FeedURL,
		SourceFile:      raw.SourceFile,
		RefreshInterval: raw.RefreshInterval,
		Port:            raw.Port,
		WorkerCount:     raw.WorkerCount,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func validate(raw *rawCfg) error {
	if raw.FeedURL == "" {
		return fmt.Errorf("feed URL is required")
	}
	if raw.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must be non-negative")
	}
	if raw.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
