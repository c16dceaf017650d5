package slots

import "go.uber.org/zap"

const (
	// DefaultDefinitionType is the block type of the "define a slot" template.
	DefaultDefinitionType = "voice_slot_define"

	// DefaultGetterType is the block type of the "get slot" template.
	DefaultGetterType = "voice_slot_get"

	// DefaultSlotName is the name pre-filled on a new definition template.
	DefaultSlotName = "slot"

	// DefaultGap is the spacing hint between flyout entries.
	DefaultGap = 16

	// DefaultSectionGap separates the definition template from the getters.
	DefaultSectionGap = 24
)

// Registry carries the settings used by Rename and Flyout.
// It holds no workspace state; every call takes the workspace explicitly.
type Registry struct {
	catalog        Catalog
	definitionType string
	getterType     string
	defaultName    string
	gap            int
	sectionGap     int
	warnNaming     bool
	logger         *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// New creates a Registry with the default template types and gaps.
// Without WithCatalog the flyout never offers a definition template.
func New(opts ...Option) *Registry {
	r := &Registry{
		definitionType: DefaultDefinitionType,
		getterType:     DefaultGetterType,
		defaultName:    DefaultSlotName,
		gap:            DefaultGap,
		sectionGap:     DefaultSectionGap,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithCatalog sets the block-type catalog consulted by Flyout.
func WithCatalog(c Catalog) Option {
	return func(r *Registry) { r.catalog = c }
}

// WithTemplateTypes overrides the definition and getter block types.
// Empty values keep the current setting.
func WithTemplateTypes(definitionType, getterType string) Option {
	return func(r *Registry) {
		if definitionType != "" {
			r.definitionType = definitionType
		}
		if getterType != "" {
			r.getterType = getterType
		}
	}
}

// WithDefaultName sets the name pre-filled on the definition template.
func WithDefaultName(name string) Option {
	return func(r *Registry) { r.defaultName = name }
}

// WithGaps overrides the flyout spacing hints. Non-positive values are ignored.
func WithGaps(gap, sectionGap int) Option {
	return func(r *Registry) {
		if gap > 0 {
			r.gap = gap
		}
		if sectionGap > 0 {
			r.sectionGap = sectionGap
		}
	}
}

// WithNamingWarnings logs accepted names that break CheckNamingRule.
func WithNamingWarnings(enabled bool) Option {
	return func(r *Registry) { r.warnNaming = enabled }
}

// WithLogger sets the logger. A nil logger is replaced by a no-op one.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l == nil {
			l = zap.NewNop()
		}
		r.logger = l
	}
}

// DefinitionType returns the configured definition template type.
func (r *Registry) DefinitionType() string { return r.definitionType }

// GetterType returns the configured getter template type.
func (r *Registry) GetterType() string { return r.getterType }
