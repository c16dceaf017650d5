package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zqp2013/blockly/pkg/slots"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slots.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
flyout:
  definition_type: intent_slot
  getter_type: intent_slot_ref
  gap: 8
catalog:
  - intent_slot
  - intent_slot_ref
naming:
  warn_on_rule_violation: false
store:
  redis_url: redis://cache:6379/2
  instance: kitchen-assistant
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "intent_slot", config.Flyout.DefinitionType)
	assert.Equal(t, "intent_slot_ref", config.Flyout.GetterType)
	assert.Equal(t, 8, config.Flyout.Gap)
	assert.Equal(t, slots.DefaultSectionGap, config.Flyout.SectionGap, "omitted section gap uses default")
	assert.Equal(t, slots.DefaultSlotName, config.Flyout.DefaultName)
	assert.False(t, config.Naming.WarnOnRuleViolation)
	assert.Equal(t, "redis://cache:6379/2", config.Store.RedisURL)
	assert.Equal(t, "kitchen-assistant", config.Store.Instance)
}

func TestLoad_MinimalConfigGetsDefaults(t *testing.T) {
	config, err := Load(writeConfig(t, "version: \"1.0\"\n"))
	require.NoError(t, err)

	assert.Equal(t, slots.DefaultDefinitionType, config.Flyout.DefinitionType)
	assert.Equal(t, slots.DefaultGetterType, config.Flyout.GetterType)
	assert.Equal(t, slots.DefaultGap, config.Flyout.Gap)
	assert.True(t, config.Naming.WarnOnRuleViolation)
	assert.Equal(t, DefaultRedisURL, config.Store.RedisURL)
	assert.Equal(t, DefaultInstance, config.Store.Instance)
	assert.Empty(t, config.Catalog)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/slots.yml")
	assert.Nil(t, config)
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	config, err := Load(writeConfig(t, "version: \"1.0\"\ncatalog:\n  - a\n   b: [\n"))
	assert.Nil(t, config)
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "wrong version",
			config:  Config{Version: "2.0"},
			wantErr: "unsupported version: 2.0",
		},
		{
			name:    "negative gap",
			config:  Config{Version: Version, Flyout: &FlyoutConfig{Gap: -1}},
			wantErr: "flyout.gap must be > 0",
		},
		{
			name:    "negative section gap",
			config:  Config{Version: Version, Flyout: &FlyoutConfig{SectionGap: -4}},
			wantErr: "flyout.section_gap must be > 0",
		},
		{
			name:    "same template types",
			config:  Config{Version: Version, Flyout: &FlyoutConfig{DefinitionType: "x", GetterType: "x"}},
			wantErr: "must differ",
		},
		{
			name:    "empty catalog entry",
			config:  Config{Version: Version, Catalog: []string{"a", ""}},
			wantErr: "catalog[1]",
		},
		{
			name:    "bad instance",
			config:  Config{Version: Version, Store: &StoreConfig{Instance: "Kitchen_Assistant"}},
			wantErr: "invalid instance name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateInstanceName(t *testing.T) {
	valid := []string{"default", "a", "kitchen-assistant", "team42", strings.Repeat("a", 63)}
	for _, name := range valid {
		assert.NoError(t, ValidateInstanceName(name), name)
	}

	invalid := []string{"", "-lead", "trail-", "UPPER", "under_score", "dot.ted", strings.Repeat("a", 64)}
	for _, name := range invalid {
		assert.Error(t, ValidateInstanceName(name), name)
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	catalog := config.BlockCatalog()

	assert.True(t, catalog.HasBlockType(slots.DefaultDefinitionType))
	assert.True(t, catalog.HasBlockType(slots.DefaultGetterType))
	assert.False(t, catalog.HasBlockType("voice_intent"))
	assert.Equal(t, DefaultInstance, config.Store.Instance)
}

func TestRegistryOptions(t *testing.T) {
	config, err := Load(writeConfig(t, `version: "1.0"
flyout:
  definition_type: intent_slot
  getter_type: intent_slot_ref
  default_name: thing
catalog: [intent_slot]
`))
	require.NoError(t, err)

	reg := slots.New(config.RegistryOptions()...)
	assert.Equal(t, "intent_slot", reg.DefinitionType())
	assert.Equal(t, "intent_slot_ref", reg.GetterType())

	entries := reg.Flyout(emptyWorkspace{})
	require.Len(t, entries, 1)
	name, _ := entries[0].Field(slots.FieldName)
	assert.Equal(t, "thing", name)
	assert.Equal(t, slots.DefaultSectionGap, entries[0].Gap)
}

type emptyWorkspace struct{}

func (emptyWorkspace) AllBlocks() []slots.Block { return nil }
func (emptyWorkspace) TopBlocks() []slots.Block { return nil }
