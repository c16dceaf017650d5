package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/zqp2013/blockly/pkg/slots"
)

const (
	// Version is the only supported slots.yml version
	Version = "1.0"

	// DefaultInstance is the store namespace used when none is configured
	DefaultInstance = "default"

	// DefaultRedisURL is used when store.redis_url is omitted
	DefaultRedisURL = "redis://localhost:6379/0"

	// maxInstanceLength keeps instance names DNS-compatible
	maxInstanceLength = 63
)

// instancePattern matches DNS-compatible names: lowercase alphanumeric, hyphens
// allowed but not at start/end.
var instancePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// Config represents the top-level slots.yml configuration
type Config struct {
	Version string        `yaml:"version"`
	Flyout  *FlyoutConfig `yaml:"flyout,omitempty"`
	Catalog []string      `yaml:"catalog"` // Block types available in the editor's toolbox
	Naming  *NamingConfig `yaml:"naming,omitempty"`
	Store   *StoreConfig  `yaml:"store,omitempty"`
}

// FlyoutConfig controls the slot category's palette entries
type FlyoutConfig struct {
	DefinitionType string `yaml:"definition_type,omitempty"` // Block type of the "define a slot" template
	GetterType     string `yaml:"getter_type,omitempty"`     // Block type of the "get slot" template
	DefaultName    string `yaml:"default_name,omitempty"`    // Name pre-filled on the definition template
	Gap            int    `yaml:"gap,omitempty"`             // Spacing between entries (default 16)
	SectionGap     int    `yaml:"section_gap,omitempty"`     // Spacing after the definition template (default 24)
}

// NamingConfig controls the advisory platform naming rule
type NamingConfig struct {
	WarnOnRuleViolation bool `yaml:"warn_on_rule_violation"`
}

// StoreConfig points at the Redis instance shared between editors
type StoreConfig struct {
	RedisURL string `yaml:"redis_url,omitempty"`
	Instance string `yaml:"instance,omitempty"`
}

// Default returns the built-in configuration, already validated.
func Default() *Config {
	cfg := &Config{
		Version: Version,
		Catalog: []string{slots.DefaultDefinitionType, slots.DefaultGetterType},
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: built-in defaults invalid: %v", err))
	}
	return cfg
}

// Validate performs strict validation and fills in defaults for omitted
// sections.
func (c *Config) Validate() error {
	if c.Version != Version {
		return fmt.Errorf("unsupported version: %s (expected: %s)", c.Version, Version)
	}

	if c.Flyout == nil {
		c.Flyout = &FlyoutConfig{}
	}
	if err := c.Flyout.Validate(); err != nil {
		return err
	}

	for i, typ := range c.Catalog {
		if typ == "" {
			return fmt.Errorf("catalog[%d]: block type cannot be empty", i)
		}
	}

	if c.Naming == nil {
		c.Naming = &NamingConfig{WarnOnRuleViolation: true}
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate applies flyout defaults and checks the spacing hints
func (f *FlyoutConfig) Validate() error {
	if f.DefinitionType == "" {
		f.DefinitionType = slots.DefaultDefinitionType
	}
	if f.GetterType == "" {
		f.GetterType = slots.DefaultGetterType
	}
	if f.DefinitionType == f.GetterType {
		return fmt.Errorf("flyout: definition_type and getter_type must differ (both '%s')", f.GetterType)
	}
	if f.DefaultName == "" {
		f.DefaultName = slots.DefaultSlotName
	}

	if f.Gap == 0 {
		f.Gap = slots.DefaultGap
	}
	if f.SectionGap == 0 {
		f.SectionGap = slots.DefaultSectionGap
	}
	if f.Gap < 0 {
		return fmt.Errorf("flyout.gap must be > 0, got %d", f.Gap)
	}
	if f.SectionGap < 0 {
		return fmt.Errorf("flyout.section_gap must be > 0, got %d", f.SectionGap)
	}

	return nil
}

// Validate applies store defaults and checks the instance name
func (s *StoreConfig) Validate() error {
	if s.RedisURL == "" {
		s.RedisURL = DefaultRedisURL
	}
	if s.Instance == "" {
		s.Instance = DefaultInstance
	}
	return ValidateInstanceName(s.Instance)
}

// ValidateInstanceName checks a store instance name against DNS naming rules.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > maxInstanceLength {
		return fmt.Errorf("instance name too long: %d characters (max: %d)", len(name), maxInstanceLength)
	}

	if !instancePattern.MatchString(name) {
		return fmt.Errorf("invalid instance name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}

// Load reads and validates slots.yml from the specified path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Catalog is the set of block types the editor offers. It implements
// slots.Catalog.
type Catalog map[string]struct{}

// HasBlockType reports whether typ is in the catalog.
func (c Catalog) HasBlockType(typ string) bool {
	_, ok := c[typ]
	return ok
}

// BlockCatalog returns the configured catalog as a lookup set.
func (c *Config) BlockCatalog() Catalog {
	set := make(Catalog, len(c.Catalog))
	for _, typ := range c.Catalog {
		set[typ] = struct{}{}
	}
	return set
}

// RegistryOptions translates the configuration into slots.Registry options.
func (c *Config) RegistryOptions() []slots.Option {
	return []slots.Option{
		slots.WithCatalog(c.BlockCatalog()),
		slots.WithTemplateTypes(c.Flyout.DefinitionType, c.Flyout.GetterType),
		slots.WithDefaultName(c.Flyout.DefaultName),
		slots.WithGaps(c.Flyout.Gap, c.Flyout.SectionGap),
		slots.WithNamingWarnings(c.Naming.WarnOnRuleViolation),
	}
}
