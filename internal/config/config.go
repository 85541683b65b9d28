// Package config holds the interpreter's constants and the optional user
// configuration file for the CLI front end.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// SourceFileExtension is the conventional extension for Lox sources.
	SourceFileExtension = ".lox"

	// EnvHistoryFile overrides the REPL history database path.
	EnvHistoryFile = "LOX_HISTORY_FILE"

	// DefaultPrompt is shown by the REPL when no config overrides it.
	DefaultPrompt = "> "

	// DefaultHistoryFileName is the history database created in the user's
	// home directory when nothing else is configured.
	DefaultHistoryFileName = ".golox_history.db"

	// ExitCodeError is the CLI exit status for any pipeline error
	// (EX_DATAERR from sysexits).
	ExitCodeError = 65
)

// Config is the optional YAML configuration file.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Verbose     bool   `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Prompt: DefaultPrompt}
}

// Path returns the location of the user config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "golox", "config.yaml"), nil
}

// Load reads the user config file, falling back to defaults when the file
// does not exist.
func Load() (Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	return cfg, nil
}

// HistoryPath resolves the history database location: explicit flag value,
// then the environment override, then the config file, then the home
// default.
func HistoryPath(flagValue string, cfg Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvHistoryFile); env != "" {
		return env
	}
	if cfg.HistoryFile != "" {
		return cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHistoryFileName
	}
	return filepath.Join(home, DefaultHistoryFileName)
}
