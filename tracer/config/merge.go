package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MergeMaterials merges materials from a JSON file with inline materials
func (m *Materials) MergeMaterials() error {
	if m.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(m.FromFile)
	if err != nil {
		return fmt.Errorf("reading materials file: %w", err)
	}

	var fileMaterials map[string]Material
	if err := json.Unmarshal(data, &fileMaterials); err != nil {
		return fmt.Errorf("parsing materials file: %w", err)
	}

	if m.Inline == nil {
		m.Inline = make(map[string]Material)
	}

	// Inline takes precedence
	for name, material := range fileMaterials {
		if _, exists := m.Inline[name]; !exists {
			m.Inline[name] = material
		}
	}

	return nil
}

// LoadAndMerge loads all external files and merges their contents
func (c *SceneConfig) LoadAndMerge() error {
	if err := c.Materials.MergeMaterials(); err != nil {
		return fmt.Errorf("merging materials: %w", err)
	}
	return nil
}
