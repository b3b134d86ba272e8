package config

import (
	"os"
	"path/filepath"
)

// PathResolver handles resolution of relative paths in the config
type PathResolver struct {
	baseDir string
}

// NewPathResolver creates a new PathResolver relative to the given base directory
func NewPathResolver(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

// ResolvePath resolves a potentially relative path against the base directory
func (pr *PathResolver) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.baseDir, path)
}

// FileExists checks if a file exists and is readable
func (pr *PathResolver) FileExists(path string) bool {
	f, err := os.Open(pr.ResolvePath(path))
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// CheckFiles reports every input file the config names that cannot be opened
func (c *SceneConfig) CheckFiles(resolver *PathResolver) []ValidationError {
	var errors []ValidationError
	check := func(field, path string) {
		if path != "" && !resolver.FileExists(path) {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "file " + resolver.ResolvePath(path) + " cannot be read",
			})
		}
	}
	check("input.environment_map.path", c.Input.EnvironmentMap.Path)
	if c.Input.Mesh != nil {
		check("input.mesh.path", c.Input.Mesh.Path)
	}
	check("materials.from_file", c.Materials.FromFile)
	return errors
}
