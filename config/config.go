package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/reqdiff/domain"
)

// Config is the top-level configuration for reqdiff.
type Config struct {
	// AllowedManifests is the closed allow-list of manifest basename
	// patterns (doublestar syntax).
	AllowedManifests []string `yaml:"allowed_manifests"`
	// ExcludedPrefixes marks basenames starting with any of these prefixes
	// as out of scope, taking precedence over the allow-list.
	ExcludedPrefixes []string `yaml:"excluded_prefixes"`
	// IncludeRemovals keeps REMOVE records in the output.
	IncludeRemovals bool `yaml:"include_removals"`

	Git    GitConfig    `yaml:"git"`
	Ticket TicketConfig `yaml:"ticket"`
}

// GitConfig holds the default refs used when extracting from a local
// repository.
type GitConfig struct {
	OldRef string `yaml:"old_ref"`
	NewRef string `yaml:"new_ref"`
}

// TicketConfig carries the release metadata embedded in generated ticket
// bodies and files.
type TicketConfig struct {
	Release     string   `yaml:"release"`
	UpstreamURL string   `yaml:"upstream_url"`
	Project     string   `yaml:"project"`
	Assignee    string   `yaml:"assignee"`
	Components  []string `yaml:"components"`
	Label       string   `yaml:"label"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		AllowedManifests: domain.DefaultAllowedManifests(),
		ExcludedPrefixes: domain.DefaultExcludedPrefixes(),
		Git: GitConfig{
			OldRef: "HEAD~1",
			NewRef: "HEAD",
		},
		Ticket: TicketConfig{
			Label: "package",
		},
	}
}

// Load reads and parses a configuration file, expanding ${ENV_VAR}
// references in ticket metadata. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Ticket.Release = expandEnv(cfg.Ticket.Release)
	cfg.Ticket.UpstreamURL = expandEnv(cfg.Ticket.UpstreamURL)
	cfg.Ticket.Assignee = expandEnv(cfg.Ticket.Assignee)

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".reqdiff.yaml",
		".reqdiff.yml",
		"reqdiff.yaml",
		"reqdiff.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv expands ${ENV_VAR} references in a configuration value.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	if len(cfg.AllowedManifests) == 0 {
		return errors.New("allowed_manifests must have at least one pattern")
	}
	for i, pattern := range cfg.AllowedManifests {
		if pattern == "" {
			return fmt.Errorf("allowed_manifests[%d] must not be empty", i)
		}
	}
	if cfg.Git.OldRef == "" || cfg.Git.NewRef == "" {
		return errors.New("git.old_ref and git.new_ref must not be empty")
	}
	return nil
}
