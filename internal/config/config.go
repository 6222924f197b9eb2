package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Language          string `mapstructure:"language"`
	LineBoundedQuotes bool   `mapstructure:"line_bounded_quotes"`
	PreserveFences    bool   `mapstructure:"preserve_fences"`
	MaxMessageLength  int    `mapstructure:"max_message_length"`
	DBPath            string `mapstructure:"db_path"`
	MaxInputTokens    int    `mapstructure:"max_input_tokens"`
	LogLevel          string `mapstructure:"log_level"`
}

// C is the global config instance
var C Config

// SetDefaults registers every default with viper
func SetDefaults() {
	viper.SetDefault("language", "python")
	viper.SetDefault("line_bounded_quotes", false)
	viper.SetDefault("preserve_fences", false)
	viper.SetDefault("max_message_length", 4096)
	viper.SetDefault("db_path", defaultDBPath())
	viper.SetDefault("max_input_tokens", 40000)
	viper.SetDefault("log_level", "info")
}

// Init initializes configuration with viper
func Init() error {
	SetDefaults()

	viper.SetConfigName("mixfence")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mixfence"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MIXFENCE")
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and env still apply
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return viper.Unmarshal(&C)
}

// GetLanguage returns the fence language tag
func GetLanguage() string {
	return viper.GetString("language")
}

// GetLineBoundedQuotes returns whether quote escaping stays on one line
func GetLineBoundedQuotes() bool {
	return viper.GetBool("line_bounded_quotes")
}

// GetPreserveFences returns whether existing fences pass through
func GetPreserveFences() bool {
	return viper.GetBool("preserve_fences")
}

// GetMaxMessageLength returns the message split size in runes
func GetMaxMessageLength() int {
	return viper.GetInt("max_message_length")
}

// GetDBPath returns the history database directory with tilde expansion
func GetDBPath() string {
	return expandTilde(viper.GetString("db_path"))
}

// GetMaxInputTokens returns the token budget for conversation truncation
func GetMaxInputTokens() int {
	return viper.GetInt("max_input_tokens")
}

// GetLogLevel parses log_level, falling back to info
func GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(viper.GetString("log_level")))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func defaultDBPath() string {
	return filepath.Join("~", ".local", "share", "mixfence", "history")
}
