package scaffold

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zqp2013/blockly/internal/config"
	"github.com/zqp2013/blockly/pkg/workspace"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	// ConfigFile is the registry configuration written by Initialize
	ConfigFile = "slots.yml"

	// WorkspaceFile is the example workspace written by Initialize
	WorkspaceFile = "workspace.yml"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes slots.yml and an example workspace.yml into dir, then
// loads both back to make sure they are usable. Existing files are
// overwritten; call CheckExisting first to refuse that.
func Initialize(dir string) ([]string, error) {
	files, err := getTemplateFiles(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := writeFiles(files); err != nil {
		return nil, err
	}

	if err := validateCreatedFiles(dir); err != nil {
		return nil, err
	}

	created := make([]string, len(files))
	for i, f := range files {
		created[i] = f.Path
	}
	return created, nil
}

// getTemplateFiles reads the embedded templates
func getTemplateFiles(dir string) ([]FileInfo, error) {
	var files []FileInfo

	for _, name := range []string{ConfigFile, WorkspaceFile} {
		content, err := templatesFS.ReadFile("templates/" + name + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", name, err)
		}
		files = append(files, FileInfo{
			Path:        filepath.Join(dir, name),
			Content:     content,
			Permissions: 0644,
		})
	}

	return files, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles loads the written files with the real parsers
func validateCreatedFiles(dir string) error {
	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", ConfigFile, err)
	}

	if _, err := workspace.LoadFile(filepath.Join(dir, WorkspaceFile)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", WorkspaceFile, err)
	}

	return nil
}

// PrintSuccess prints the created files and next steps
func PrintSuccess(w io.Writer, created []string) {
	fmt.Fprintln(w, "\n✅ Successfully initialized slot registry!")
	fmt.Fprintln(w, "\nCreated:")
	for _, path := range created {
		fmt.Fprintf(w, "  ✓ %s\n", path)
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Run 'slots list' to see the example slots")
	fmt.Fprintln(w, "  2. Run 'slots flyout' to preview the palette")
	fmt.Fprintln(w, "  3. Run 'slots push' to share the workspace through Redis")
}
