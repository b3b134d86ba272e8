package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// WorkersEnv overrides render.workers when set to a positive integer
const WorkersEnv = "RAYTRACER_WORKERS"

const maxWorkers = 128

// LoadEnv reads dir/.env into the process environment if the file exists. Variables that are
// already set are left alone.
func LoadEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ApplyEnvironment overrides config values from environment variables. Malformed values are
// ignored.
func (c *SceneConfig) ApplyEnvironment() {
	if v := os.Getenv(WorkersEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxWorkers {
			c.Render.Workers = n
		}
	}
}
