package slots

import (
	"encoding/xml"
	"fmt"
)

const (
	// KindBlock marks a descriptor that inserts a block.
	KindBlock = "block"

	// FieldName is the field carrying a slot name on both templates.
	FieldName = "NAME"
)

// Descriptor is one flyout entry: a block template with a spacing hint and
// pre-filled fields.
type Descriptor struct {
	XMLName xml.Name `xml:"block" json:"-" yaml:"-"`
	Kind    string   `xml:"-" json:"kind" yaml:"kind"`
	Type    string   `xml:"type,attr" json:"type" yaml:"type"`
	Gap     int      `xml:"gap,attr" json:"gap" yaml:"gap"`
	Fields  []Field  `xml:"field" json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field is a named value attached to a Descriptor.
type Field struct {
	Name  string `xml:"name,attr" json:"name" yaml:"name"`
	Value string `xml:",chardata" json:"value" yaml:"value"`
}

// Field returns the value of the named field.
func (d Descriptor) Field(name string) (string, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Flyout builds the slot category's palette entries for ws.
//
// The definition template comes first when the catalog knows its type, with
// the wider section gap after it. One getter follows per slot, in AllSlots
// order.
func (r *Registry) Flyout(ws Workspace) []Descriptor {
	var entries []Descriptor

	if r.catalog != nil && r.catalog.HasBlockType(r.definitionType) {
		entries = append(entries, r.descriptor(r.definitionType, r.defaultName))
	}
	if len(entries) > 0 {
		entries[len(entries)-1].Gap = r.sectionGap
	}

	for _, slot := range AllSlots(ws) {
		entries = append(entries, r.descriptor(r.getterType, slot.Name))
	}
	return entries
}

func (r *Registry) descriptor(typ, name string) Descriptor {
	return Descriptor{
		Kind:   KindBlock,
		Type:   typ,
		Gap:    r.gap,
		Fields: []Field{{Name: FieldName, Value: name}},
	}
}

type flyoutXML struct {
	XMLName xml.Name     `xml:"xml"`
	Blocks  []Descriptor `xml:"block"`
}

// MarshalFlyoutXML renders entries in the editor's toolbox XML format.
func MarshalFlyoutXML(entries []Descriptor) ([]byte, error) {
	data, err := xml.MarshalIndent(flyoutXML{Blocks: entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal flyout XML: %w", err)
	}
	return data, nil
}
