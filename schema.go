package enver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEntries reads a list of entry declarations from a YAML (.yaml, .yml) or
// JSON (.json) file. Every entry must carry a known importance.
func LoadEntries(path string) ([]Entry, error) {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSchemaFileType, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []Entry
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &entries)
	default:
		err = yaml.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}
	for i, e := range entries {
		if !e.Importance.Valid() {
			return nil, fmt.Errorf("%w %q for entry %d (%s)", ErrInvalidImportance, e.Importance, i, e.Name)
		}
	}
	return entries, nil
}
