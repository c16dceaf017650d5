package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckExisting returns an error if dir already holds slots.yml or
// workspace.yml, unless force is set.
func CheckExisting(dir string, force bool) error {
	if force {
		return nil
	}

	var existingFiles []string
	for _, name := range []string{ConfigFile, WorkspaceFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			existingFiles = append(existingFiles, name)
		}
	}

	if len(existingFiles) == 0 {
		return nil
	}

	errMsg := "project already initialized\n\nFound existing"
	if len(existingFiles) == 1 {
		errMsg += fmt.Sprintf(": %s\n", existingFiles[0])
	} else {
		errMsg += " files:\n"
		for _, file := range existingFiles {
			errMsg += fmt.Sprintf("  - %s\n", file)
		}
	}
	errMsg += "\nUse 'slots init --force' to reinitialize (this will overwrite existing files)"

	return fmt.Errorf("%s", errMsg)
}
