package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultUpstreamURL is the repository tracked when no settings file overrides it.
	DefaultUpstreamURL = "https://github.com/vllm-project/vllm"

	// DefaultTicketsDir is where drafted ticket records are written and read.
	DefaultTicketsDir = "ticket_text"

	defaultSourceType  = "git"
	defaultTitlePrefix = "builder"
)

// Settings is the top-level configuration for vermap.
type Settings struct {
	Upstream UpstreamSettings `yaml:"upstream"`
	Tracker  TrackerSettings  `yaml:"tracker"`
	Tickets  TicketsSettings  `yaml:"tickets"`
	Release  string           `yaml:"release"`
}

// UpstreamSettings describes the repository the component versions are read from.
type UpstreamSettings struct {
	URL    string `yaml:"url"`    // HTTPS or SSH remote of the tracked project
	Name   string `yaml:"name"`   // Display name used in ticket bodies
	Source string `yaml:"source"` // "git" (clone) or "github" (API, no clone)
	Token  string `yaml:"token"`  // Inline, ${ENV_VAR}, or file path
}

// TrackerSettings describes the issue tracker tickets are submitted to,
// plus the static assignment metadata stamped on every ticket.
type TrackerSettings struct {
	Type        string   `yaml:"type"` // "jira"
	BaseURL     string   `yaml:"base_url"`
	Token       string   `yaml:"token"` // Inline, ${ENV_VAR}, or file path
	Project     string   `yaml:"project"`
	Assignee    string   `yaml:"assignee"`
	Components  []string `yaml:"components"`
	Label       string   `yaml:"label"`
	TitlePrefix string   `yaml:"title_prefix"`
}

// TicketsSettings holds the ticket drafting options.
type TicketsSettings struct {
	Dir string `yaml:"dir"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a settings file, expanding environment
// variables and resolving token file paths. An empty path yields the
// built-in defaults.
func NewSettings(path string) (*Settings, error) {
	settings := defaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", unmarshalErr)
		}
	}

	applyDefaults(settings)

	// Resolve tokens (env vars and file paths)
	settings.Upstream.Token = resolveToken(settings.Upstream.Token)
	settings.Tracker.Token = resolveToken(settings.Tracker.Token)

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a settings file in standard locations.
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
		".vermap.yaml",
		".vermap.yml",
		"vermap.yaml",
		"vermap.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("settings file not found in default locations")
}

func defaultSettings() *Settings {
	//nolint:exhaustruct // Remaining fields are filled by applyDefaults or stay empty
	return &Settings{
		Upstream: UpstreamSettings{
			URL:    DefaultUpstreamURL,
			Source: defaultSourceType,
		},
	}
}

func applyDefaults(settings *Settings) {
	if settings.Upstream.URL == "" {
		settings.Upstream.URL = DefaultUpstreamURL
	}
	if settings.Upstream.Name == "" {
		settings.Upstream.Name = upstreamDisplayName(settings.Upstream.URL)
	}
	if settings.Upstream.Source == "" {
		settings.Upstream.Source = defaultSourceType
	}
	if settings.Tickets.Dir == "" {
		settings.Tickets.Dir = DefaultTicketsDir
	}
	if settings.Tracker.TitlePrefix == "" {
		settings.Tracker.TitlePrefix = defaultTitlePrefix
	}
}

// upstreamDisplayName derives a display name from the repository URL.
// The default upstream keeps its conventional capitalization.
func upstreamDisplayName(url string) string {
	if url == DefaultUpstreamURL {
		return "vLLM"
	}
	name := strings.TrimSuffix(url, "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for settings values that can be rejected upfront.
// Tracker completeness is checked by the tickets command right before a
// live submission, so a read-only invocation never demands tracker settings.
func validate(settings *Settings) error {
	if settings.Upstream.URL == "" {
		return errors.New("upstream.url is required")
	}

	switch settings.Upstream.Source {
	case "git", "github":
	default:
		return fmt.Errorf(
			"upstream.source must be \"git\" or \"github\", got %q",
			settings.Upstream.Source,
		)
	}

	if settings.Tracker.Type != "" && settings.Tracker.Type != "jira" {
		return fmt.Errorf("tracker.type must be \"jira\", got %q", settings.Tracker.Type)
	}

	return nil
}

// ValidateForSubmission checks the tracker settings needed for a live run.
func (s *Settings) ValidateForSubmission() error {
	if s.Tracker.Type == "" {
		return errors.New("tracker.type is required for live submission")
	}
	if s.Tracker.BaseURL == "" {
		return errors.New("tracker.base_url is required for live submission")
	}
	if s.Tracker.Token == "" {
		return errors.New(
			"tracker.token is required for live submission (set inline, via ${ENV_VAR}, or as file path)",
		)
	}
	if s.Tracker.Project == "" {
		return errors.New("tracker.project is required for live submission")
	}
	return nil
}
