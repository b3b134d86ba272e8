package config

import (
	"os/exec"
	"strings"
	"time"
)

const unknownCommit = "unknown"

// MetadataCollector stamps a config with when and from which source revision it was written
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector captures the current time and git commit. Outside a git checkout the
// commit is recorded as "unknown".
func NewMetadataCollector() (*MetadataCollector, error) {
	gitCommit, err := getCurrentGitCommit()
	if err != nil {
		gitCommit = unknownCommit
	}

	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: gitCommit,
	}, nil
}

func getCurrentGitCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// PopulateMetadata fills in the metadata fields of the config
func (mc *MetadataCollector) PopulateMetadata(config *SceneConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}
