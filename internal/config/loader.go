package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every configuration validation failure
var ErrInvalid = errors.New("invalid config")

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'triage config init' to create): %w", expandedPath, err)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault loads the configuration file, falling back to Default when
// the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse overlays TOML data on the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// DefaultPath returns ~/.config/triage/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "triage", "config.toml"), nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Institution validation
	if strings.TrimSpace(c.Institution.Name) == "" {
		errs = append(errs, errors.New("institution.name is required"))
	}

	// Field alias validation
	aliases := map[string][]string{
		"fields.age":                     c.Fields.Age,
		"fields.degree":                  c.Fields.Degree,
		"fields.country":                 c.Fields.Country,
		"fields.personal_statement":      c.Fields.PersonalStatement,
		"fields.self_sponsorship":        c.Fields.SelfSponsorship,
		"fields.family_support":          c.Fields.FamilySupport,
		"fields.private_loan":            c.Fields.PrivateLoan,
		"fields.third_party_scholarship": c.Fields.ThirdPartyScholarship,
		"fields.email":                   c.Fields.Email,
		"fields.first_name":              c.Fields.FirstName,
		"fields.birth_date":              c.Fields.BirthDate,
	}
	for _, key := range sortedKeys(aliases) {
		if len(aliases[key]) == 0 {
			errs = append(errs, fmt.Errorf("%s must list at least one column", key))
		}
	}

	// Weight validation
	if c.Weights.GraduateAge < 10 || c.Weights.MatureAge > 80 || c.Weights.GraduateAge >= c.Weights.MatureAge {
		errs = append(errs, fmt.Errorf("weights.graduate_age (%d) must be below weights.mature_age (%d), both within 10-80",
			c.Weights.GraduateAge, c.Weights.MatureAge))
	}

	// Threshold validation
	t := c.Thresholds
	if t.MinScore >= t.MaxScore {
		errs = append(errs, fmt.Errorf("thresholds.min_score (%d) must be below thresholds.max_score (%d)", t.MinScore, t.MaxScore))
	}
	if !(t.MinScore <= t.Medium && t.Medium <= t.High && t.High <= t.TopPriority && t.TopPriority <= t.MaxScore) {
		errs = append(errs, fmt.Errorf("thresholds must satisfy min_score <= medium <= high <= top_priority <= max_score, got %d/%d/%d/%d/%d",
			t.MinScore, t.Medium, t.High, t.TopPriority, t.MaxScore))
	}

	// Keyword validation
	keywords := map[string][]string{
		"keywords.negative":             c.Keywords.Negative,
		"keywords.self_funding":         c.Keywords.SelfFunding,
		"keywords.family_funding":       c.Keywords.FamilyFunding,
		"keywords.private_loan":         c.Keywords.PrivateLoan,
		"keywords.scholarship_domain":   c.Keywords.ScholarshipDomain,
		"keywords.scholarship_planning": c.Keywords.ScholarshipPlanning,
		"keywords.statement_need":       c.Keywords.StatementNeed,
	}
	for _, key := range sortedKeys(keywords) {
		if len(keywords[key]) == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", key))
		}
	}

	// Region validation
	if len(c.Regions.Canada)+len(c.Regions.US)+len(c.Regions.Europe)+len(c.Regions.Caribbean) == 0 {
		errs = append(errs, errors.New("regions must list at least one country"))
	}

	// Engine validation
	if c.Engine.Workers < 1 {
		errs = append(errs, errors.New("engine.workers must be at least 1"))
	}
	if c.Engine.ParallelThreshold < 0 {
		errs = append(errs, errors.New("engine.parallel_threshold must not be negative"))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got '%s'", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
