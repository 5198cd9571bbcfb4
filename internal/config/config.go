package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/registry"
	"github.com/gyeh/revshare/internal/schema"
	"github.com/gyeh/revshare/internal/source"
)

// DSNEnv is the environment variable consulted for the database DSN.
const DSNEnv = "REVSHARE_DB_URL"

// Config holds all runtime configuration for a revshare run.
type Config struct {
	DSN        string
	LogFormat  string // "text" or "json"
	LogLevel   string
	ConfigPath string
	AWSRegion  string

	// compensation
	BillingPath string
	Physician   string
	From        string
	To          string

	// reconcile
	ExpectedPath string
	PaidPath     string

	WorkbookOut string
	ParquetOut  string
	Persist     bool
	Quiet       bool

	ListenAddr string

	// Loaded from the YAML file.
	Physicians    []model.PhysicianProfile
	RegistryFile  string
	ColumnAliases map[string]string
	RateOverrides map[string]SplitConfig
}

// SplitConfig is one tier's percentages in the YAML file.
type SplitConfig struct {
	Above float64 `yaml:"above"`
	Below float64 `yaml:"below"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Physicians    []model.PhysicianProfile `yaml:"physicians"`
	RegistryFile  string                   `yaml:"registry_file"`
	ColumnAliases map[string]string        `yaml:"column_aliases"`
	Rates         map[string]SplitConfig   `yaml:"rates"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if len(yc.Physicians) > 0 && yc.RegistryFile != "" {
		return fmt.Errorf("config file sets both physicians and registry_file")
	}
	c.Physicians = yc.Physicians
	c.RegistryFile = yc.RegistryFile
	c.ColumnAliases = yc.ColumnAliases
	c.RateOverrides = yc.Rates
	return c.validateAliases()
}

// validateAliases checks that every alias targets a canonical column.
func (c *Config) validateAliases() error {
	known := map[string]bool{
		schema.ServiceDate: true, schema.PhysicianName: true, schema.PatientID: true,
		schema.ProcedureDescription: true, schema.Insurer: true,
		schema.NetAmount: true, schema.SettlementPct: true,
	}
	for header, col := range c.ColumnAliases {
		if !known[col] {
			return fmt.Errorf("column alias %q targets unknown column %q", header, col)
		}
	}
	return nil
}

// Registry builds the physician registry: inline physicians, then a
// registry file, then the built-in default.
func (c *Config) Registry() (*registry.Registry, error) {
	switch {
	case len(c.Physicians) > 0:
		return registry.New(c.Physicians)
	case c.RegistryFile != "":
		return registry.Load(c.RegistryFile)
	}
	return registry.Default(), nil
}

// Aliases returns the default header aliases merged with the configured ones.
func (c *Config) Aliases() schema.Aliases {
	return schema.DefaultAliases().Merge(c.ColumnAliases)
}

// Rates returns the default split table with configured overrides applied.
func (c *Config) Rates() (compensation.Rates, error) {
	rates := compensation.DefaultRates()
	for name, s := range c.RateOverrides {
		tier, ok := model.ParseTier(strings.ToUpper(strings.TrimSpace(name)))
		if !ok {
			return rates, fmt.Errorf("rates: unknown tier %q", name)
		}
		rates = rates.With(tier, compensation.Split{
			Above: decimal.NewFromFloat(s.Above),
			Below: decimal.NewFromFloat(s.Below),
		})
	}
	if err := rates.Validate(); err != nil {
		return rates, fmt.Errorf("rates: %w", err)
	}
	return rates, nil
}

// Filter parses the --from/--to bounds.
func (c *Config) Filter() (compensation.Filter, error) {
	var f compensation.Filter
	if c.From != "" {
		if f.From = normalize.ParseDate(c.From); f.From == nil {
			return f, fmt.Errorf("--from: unparseable date %q", c.From)
		}
	}
	if c.To != "" {
		if f.To = normalize.ParseDate(c.To); f.To == nil {
			return f, fmt.Errorf("--to: unparseable date %q", c.To)
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("--from %s is after --to %s", f.From.Format(time.DateOnly), f.To.Format(time.DateOnly))
	}
	return f, nil
}

func checkInput(flag, path string) error {
	if path == "" {
		return fmt.Errorf("%s is required", flag)
	}
	if source.IsRemote(path) {
		if _, err := source.ParseS3(path); err != nil {
			return fmt.Errorf("%s: %w", flag, err)
		}
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: file not accessible: %w", flag, err)
	}
	return nil
}

func (c *Config) validateOutputs() error {
	if c.Persist && c.DSN == "" {
		return fmt.Errorf("--persist needs --dsn or %s", DSNEnv)
	}
	return nil
}

// ValidateCompensation checks the fields a compensation run needs.
func (c *Config) ValidateCompensation() error {
	if err := checkInput("--billing", c.BillingPath); err != nil {
		return err
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	if _, err := c.Rates(); err != nil {
		return err
	}
	return c.validateOutputs()
}

// ValidateReconciliation checks the fields a reconciliation run needs.
func (c *Config) ValidateReconciliation() error {
	if err := checkInput("--expected", c.ExpectedPath); err != nil {
		return err
	}
	if err := checkInput("--paid", c.PaidPath); err != nil {
		return err
	}
	return c.validateOutputs()
}

// ValidateWithDSN checks that a DSN is set.
func (c *Config) ValidateWithDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or %s is required", DSNEnv)
	}
	return nil
}
