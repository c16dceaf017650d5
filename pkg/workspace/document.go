package workspace

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is the only supported workspace file version.
const DocumentVersion = "1.0"

// Document is the on-disk form of a workspace (workspace.yml).
type Document struct {
	Version string   `yaml:"version"`
	Blocks  []Record `yaml:"blocks"`
}

// Parse decodes a workspace document and builds the workspace.
func Parse(data []byte) (*Workspace, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported workspace version: %s (expected: %s)", doc.Version, DocumentVersion)
	}

	ws, err := FromRecords(doc.Blocks)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace: %w", err)
	}
	return ws, nil
}

// Marshal encodes ws as a workspace document.
func Marshal(ws *Workspace) ([]byte, error) {
	doc := Document{Version: DocumentVersion, Blocks: ws.Records()}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode workspace: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode workspace: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadFile reads and validates a workspace document from path.
func LoadFile(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}
	return Parse(data)
}

// SaveFile writes ws to path, replacing any existing file.
func SaveFile(path string, ws *Workspace) error {
	data, err := Marshal(ws)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	return nil
}
