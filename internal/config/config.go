// Package config loads the md2docx configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds tool paths and conversion defaults.
type Config struct {
	Pandoc   PandocConfig   `yaml:"pandoc"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Profiles ProfilesConfig `yaml:"profiles"`
}

// PandocConfig locates the pandoc executable.
type PandocConfig struct {
	Path string `yaml:"path"` // empty = search PATH
}

// DefaultsConfig supplies fallbacks for flags left unset.
type DefaultsConfig struct {
	Template  string `yaml:"template"`  // reference template path
	Formats   string `yaml:"formats"`   // comma-separated, e.g. "docx,pdf"
	Profile   string `yaml:"profile"`   // profile name
	PDFEngine string `yaml:"pdfEngine"` // preferred LaTeX engine
}

// ProfilesConfig points at a custom profiles file.
type ProfilesConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns the zero configuration: pandoc from PATH, no
// template, docx output, no profile.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or a config name.
// A value containing a path separator is treated as a path; anything else
// is searched as <name>.yaml / <name>.yml in the current directory and
// then in the user config directory under go-md2docx/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name, trying .yaml then
// .yml, in the current directory and then the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2docx", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
