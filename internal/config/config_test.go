package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Weights.FamilyFunding != 28 {
		t.Errorf("expected FamilyFunding=28, got %d", cfg.Weights.FamilyFunding)
	}

	if cfg.Weights.InstitutionScholarshipReliant != -15 {
		t.Errorf("expected InstitutionScholarshipReliant=-15, got %d", cfg.Weights.InstitutionScholarshipReliant)
	}

	if cfg.Thresholds.TopPriority != 70 {
		t.Errorf("expected TopPriority=70, got %d", cfg.Thresholds.TopPriority)
	}

	if cfg.Thresholds.MaxScore != 100 {
		t.Errorf("expected MaxScore=100, got %d", cfg.Thresholds.MaxScore)
	}

	assert.Contains(t, cfg.Keywords.Negative, "n/a")
	assert.Contains(t, cfg.Regions.Caribbean, "barbados")
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "affirmative words may be disabled",
			modify: func(c *Config) {
				c.Keywords.Affirmative = nil
			},
			wantErr: false,
		},
		{
			name: "min score above max score",
			modify: func(c *Config) {
				c.Thresholds.MinScore = 100
				c.Thresholds.MaxScore = 0
			},
			wantErr: true,
		},
		{
			name: "thresholds out of order",
			modify: func(c *Config) {
				c.Thresholds.High = 80
			},
			wantErr: true,
		},
		{
			name: "top priority above clamp",
			modify: func(c *Config) {
				c.Thresholds.TopPriority = 120
			},
			wantErr: true,
		},
		{
			name: "missing email aliases",
			modify: func(c *Config) {
				c.Fields.Email = nil
			},
			wantErr: true,
		},
		{
			name: "empty family keywords",
			modify: func(c *Config) {
				c.Keywords.FamilyFunding = []string{}
			},
			wantErr: true,
		},
		{
			name: "graduate age not below mature age",
			modify: func(c *Config) {
				c.Weights.GraduateAge = 24
			},
			wantErr: true,
		},
		{
			name: "invalid workers",
			modify: func(c *Config) {
				c.Engine.Workers = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "chatty"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want wrapped ErrInvalid", err)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Engine.Workers = 0
	cfg.Institution.Name = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.workers")
	assert.Contains(t, err.Error(), "institution.name")
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[weights]
region = 35

[keywords]
affirmative = []

[thresholds]
top_priority = 75
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 35, cfg.Weights.Region)
	assert.Equal(t, 75, cfg.Thresholds.TopPriority)
	assert.Empty(t, cfg.Keywords.Affirmative)
	// Untouched sections keep their defaults
	assert.Equal(t, 18, cfg.Weights.SelfFunding)
	assert.Equal(t, Default().Regions.Europe, cfg.Regions.Europe)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[thresholds]\nmin_score = 90\nmax_score = 10\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[weights\nregion = "), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
