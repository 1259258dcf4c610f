// Package services holds the non-UI support services: session
// persistence and the corpus directory watcher.
package services

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/chmouel/lazyscripture/internal/models"
)

const (
	defaultFilePerms = 0o600
	defaultDirPerms  = 0o750
)

// LoadPosition reads the persisted reading position. Any failure, a
// missing file included, degrades to the zero position; startup never
// fails on session state.
func LoadPosition(path string) models.Position {
	// #nosec G304 -- path comes from config, owned by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Position{}
	}
	var pos models.Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return models.Position{}
	}
	return pos
}

// SavePosition writes the reading position for the next session.
func SavePosition(path string, pos models.Position) error {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerms); err != nil {
		return err
	}
	data, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, defaultFilePerms)
}
