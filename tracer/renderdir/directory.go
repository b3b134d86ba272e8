package renderdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	RendersDir    = "renders"
	LatestSymlink = "latest"
)

type RenderDir struct {
	Path      string    // Absolute path to render directory
	ID        string    // Unique render identifier
	Timestamp time.Time // When the render was started
}

// Create makes a new directory under root for one render and points root/latest at it
func Create(root string) (*RenderDir, error) {
	if root == "" {
		root = RendersDir
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating renders directory: %w", err)
	}

	id := GenerateRenderID()

	absPath, err := filepath.Abs(filepath.Join(root, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating render directory: %w", err)
	}

	latestPath := filepath.Join(root, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// Don't fail if symlink creation fails
		fmt.Printf("Warning: failed to create latest symlink: %v\n", err)
	}

	return &RenderDir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetFilePath returns the absolute path for a file in the render directory
func (r *RenderDir) GetFilePath(filename string) string {
	return filepath.Join(r.Path, filename)
}

// CopyFile copies srcPath into the render directory under its own base name
func (r *RenderDir) CopyFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	destPath := r.GetFilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	return nil
}
