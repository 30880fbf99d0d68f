package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/testlens-cli/internal/dataset"
)

// Global configuration structure.
type Global struct {
	// CriteriaDB is the path of the saved-criteria database.
	CriteriaDB string `mapstructure:"criteria_db" yaml:"criteria_db"`
	// SheetName selects the workbook sheet to analyze; empty means by index.
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	// SheetIndex is the 1-based fallback sheet selector.
	SheetIndex int `mapstructure:"sheet_index" yaml:"sheet_index"`
	// ExcludedResultNames are summary-style result names hidden from the
	// analyzable list. Empty means the built-in defaults.
	ExcludedResultNames []string `mapstructure:"excluded_result_names" yaml:"excluded_result_names"`
}

// ExcludedResults resolves the configured exclusion list, falling back to the
// dataset defaults.
func (c *Global) ExcludedResults() []string {
	if c == nil || len(c.ExcludedResultNames) == 0 {
		return dataset.DefaultExcludedResults
	}
	return c.ExcludedResultNames
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.testlens/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".testlens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TESTLENS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("excluded_result_names", []string{})

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".testlens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve criteria_db default: ~/.testlens/criteria.db
	if c.CriteriaDB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.CriteriaDB = filepath.Join(home, ".testlens", "criteria.db")
	}
	return &c, nil
}
