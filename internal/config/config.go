package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"HBDSaver/internal/calculator"
	"HBDSaver/internal/ledger"
	"HBDSaver/internal/model"

	"gopkg.in/yaml.v3"
)

// placeholders are the sample values shipped in the example configuration.
var placeholders = map[string]bool{
	"your_hive_user":   true,
	"your_private_key": true,
}

// Config holds all application configuration. It is built once at startup
// and not modified afterwards.
type Config struct {
	Account    string `yaml:"account"`
	SigningKey string `yaml:"signing_key"`
	Send       struct {
		Mode         string `yaml:"mode"`
		FixedValue   string `yaml:"fixed_value"`
		PercentValue string `yaml:"percent_value"`
	} `yaml:"send"`
	Node struct {
		URL               string  `yaml:"url"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		PageSize          int     `yaml:"page_size"`
		MaxScanOps        int     `yaml:"max_scan_ops"`
	} `yaml:"node"`
	Log struct {
		Dir string `yaml:"dir"`
	} `yaml:"log"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	DryRun bool   `yaml:"dry_run"`
	Proxy  string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error. A malformed numeric or boolean override is a
// *model.ConfigurationError.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides. The second name of each pair is the
	// variable used by earlier releases.
	override(&cfg.Account, "ACCOUNT_NAME", "HIVE_USERNAME")
	override(&cfg.SigningKey, "SIGNING_KEY", "HIVE_ACTIVE_KEY")
	override(&cfg.Send.Mode, "SEND_MODE", "HBD_SEND_MODE")
	override(&cfg.Send.FixedValue, "FIXED_VALUE", "HBD_FIX_VALUE")
	override(&cfg.Send.PercentValue, "PERCENT_VALUE", "HBD_PERCENT_VALUE")
	override(&cfg.Node.URL, "HIVE_NODE_URL")
	override(&cfg.Log.Dir, "LOG_DIR")
	override(&cfg.Schedule.Cron, "CRON_SCHEDULE")
	override(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	override(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	override(&cfg.Database.SQLitePath, "SQLITE_PATH")
	override(&cfg.Proxy, "HTTPS_PROXY")
	if err := overrideInt(&cfg.Node.PageSize, "PAGE_SIZE"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Node.MaxScanOps, "MAX_SCAN_OPS"); err != nil {
		return nil, err
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &model.ConfigurationError{Field: "DRY_RUN", Msg: fmt.Sprintf("not a boolean: %q", v)}
		}
		cfg.DryRun = b
	}

	// Defaults
	if cfg.Send.Mode == "" {
		cfg.Send.Mode = string(calculator.ModeFixed)
	}
	if cfg.Node.URL == "" {
		cfg.Node.URL = "https://api.hive.blog"
	}
	if cfg.Node.RequestsPerSecond == 0 {
		cfg.Node.RequestsPerSecond = 5
	}
	if cfg.Node.PageSize == 0 {
		cfg.Node.PageSize = ledger.DefaultLimits.PageSize
	}
	if cfg.Node.MaxScanOps == 0 {
		cfg.Node.MaxScanOps = ledger.DefaultLimits.MaxOps
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = "log"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 30 0 * * *"
	}

	return cfg, nil
}

func override(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func overrideInt(dst *int, name string) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return &model.ConfigurationError{Field: name, Msg: fmt.Sprintf("not an integer: %q", v)}
	}
	*dst = n
	return nil
}

// Validate checks that all required fields are set and usable. Every failure
// is a *model.ConfigurationError.
func (c *Config) Validate() error {
	if isUnset(c.Account) {
		return &model.ConfigurationError{Field: "account", Msg: "empty or not set"}
	}
	if isUnset(c.SigningKey) {
		return &model.ConfigurationError{Field: "signing_key", Msg: "empty or not set"}
	}
	policy, err := c.Policy()
	if err != nil {
		return err
	}
	if err := calculator.Validate(policy); err != nil {
		return err
	}
	if c.Node.PageSize < 1 || c.Node.PageSize > 1000 {
		return &model.ConfigurationError{Field: "node.page_size", Msg: "must be between 1 and 1000"}
	}
	if c.Node.MaxScanOps < c.Node.PageSize {
		return &model.ConfigurationError{Field: "node.max_scan_ops", Msg: "must be at least node.page_size"}
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return &model.ConfigurationError{Field: "telegram", Msg: "bot_token and chat_id must be set together"}
	}
	return nil
}

func isUnset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || placeholders[v]
}

// Policy returns the send policy described by the configuration.
func (c *Config) Policy() (calculator.Policy, error) {
	mode, err := calculator.ParseMode(c.Send.Mode)
	if err != nil {
		return calculator.Policy{}, err
	}
	return calculator.Policy{
		Mode:         mode,
		FixedValue:   c.Send.FixedValue,
		PercentValue: c.Send.PercentValue,
	}, nil
}

// Limits returns the history scan bounds.
func (c *Config) Limits() ledger.Limits {
	return ledger.Limits{PageSize: c.Node.PageSize, MaxOps: c.Node.MaxScanOps}
}
