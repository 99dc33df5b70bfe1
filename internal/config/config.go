// Package config resolves the run options of ticketwatch.
//
// Values come from command-line flags, then environment variables, then flag
// defaults. A dotenv file (".env" by default) is loaded first when present so
// secrets can live outside the shell history.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Option keys, shared by flags and viper
const (
	KeyURL            = "url"
	KeyTelegramToken  = "telegramToken"
	KeyTelegramChatID = "telegramChatId"
	KeyDryRun         = "dry-run"
	KeyICSFile        = "ics-file"
	KeyFormat         = "format"
	KeyLogLevel       = "log-level"
	KeyTimeout        = "timeout"
	KeyEnvFile        = "env-file"
)

// envNames maps option keys to their environment variables
var envNames = map[string]string{
	KeyURL:            "TICKETWATCH_URL",
	KeyTelegramToken:  "TELEGRAM_BOT_TOKEN",
	KeyTelegramChatID: "TELEGRAM_CHAT_ID",
	KeyDryRun:         "TICKETWATCH_DRY_RUN",
	KeyICSFile:        "TICKETWATCH_ICS_FILE",
	KeyFormat:         "TICKETWATCH_FORMAT",
	KeyLogLevel:       "TICKETWATCH_LOG_LEVEL",
	KeyTimeout:        "TICKETWATCH_TIMEOUT",
}

const (
	DefaultFormat   = "text"
	DefaultLogLevel = "INFO"
	DefaultTimeout  = 30 * time.Second
	DefaultEnvFile  = ".env"
)

// Options holds the resolved parameters of a run
type Options struct {
	URL            string
	TelegramToken  string
	TelegramChatID string
	DryRun         bool
	ICSFile        string
	Format         string
	LogLevel       string
	Timeout        time.Duration
}

// RegisterFlags defines the option flags
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(KeyURL, "", "Events page URL (or env: TICKETWATCH_URL)")
	flags.String(KeyTelegramToken, "", "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	flags.String(KeyTelegramChatID, "", "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	flags.Bool(KeyDryRun, false, "Print the message instead of sending it")
	flags.String(KeyICSFile, "", "Also write available events to this .ics file")
	flags.String(KeyFormat, DefaultFormat, "Run summary format: text or json")
	flags.String(KeyLogLevel, DefaultLogLevel, "Log level: DEBUG, INFO, WARN or ERROR")
	flags.Duration(KeyTimeout, DefaultTimeout, "HTTP request timeout")
	flags.String(KeyEnvFile, DefaultEnvFile, "Dotenv file to load if present")
}

// Load resolves Options from the parsed flags, the environment and the dotenv file
func Load(flags *pflag.FlagSet) (*Options, error) {
	envFile, err := flags.GetString(KeyEnvFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s flag: %w", KeyEnvFile, err)
	}
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	opts := &Options{
		URL:            strings.TrimSpace(v.GetString(KeyURL)),
		TelegramToken:  strings.TrimSpace(v.GetString(KeyTelegramToken)),
		TelegramChatID: strings.TrimSpace(v.GetString(KeyTelegramChatID)),
		DryRun:         v.GetBool(KeyDryRun),
		ICSFile:        v.GetString(KeyICSFile),
		Format:         strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		LogLevel:       v.GetString(KeyLogLevel),
		Timeout:        v.GetDuration(KeyTimeout),
	}

	return opts, nil
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Missing returns the key of the first required option that is empty, or "".
// Telegram credentials are not required in dry-run mode.
func (o *Options) Missing() string {
	if o.URL == "" {
		return KeyURL
	}
	if o.DryRun {
		return ""
	}
	if o.TelegramToken == "" {
		return KeyTelegramToken
	}
	if o.TelegramChatID == "" {
		return KeyTelegramChatID
	}
	return ""
}

// Validate checks the non-required options
func (o *Options) Validate() error {
	if o.Format != "text" && o.Format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.Format)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s (must not be negative)", o.Timeout)
	}
	return nil
}
