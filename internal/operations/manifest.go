package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Item outcome values recorded in the manifest.
const (
	itemMoved   = "moved"
	itemSkipped = "skipped"
	itemFailed  = "failed"
)

// Manifest records one backup run: where it ran, what folder it created,
// and how each listed item fared. It is informational only; a manifest
// write failure never fails the run.
type Manifest struct {
	Org          string        `json:"org"`
	Repo         string        `json:"repo"`
	Path         string        `json:"path,omitempty"`
	BackupFolder string        `json:"backup_folder"`
	Moved        int           `json:"moved"`
	Items        []ItemResult  `json:"items,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  time.Time     `json:"completed_at"`
	Duration     time.Duration `json:"duration_ms"`
}

// ItemResult is the per-item outcome of the move loop.
type ItemResult struct {
	Name        string `json:"name"`
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}

// Write stores the manifest as <backup_folder>.json under dirPath.
func (m *Manifest) Write(dirPath string) error {
	if err := ensureDirectoryExist(dirPath); err != nil {
		return fmt.Errorf("ensure manifest directory %q: %w", dirPath, err)
	}

	filePath := filepath.Join(dirPath, m.BackupFolder+".json")
	jsonFile, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create manifest file %q: %w", filePath, err)
	}
	defer jsonFile.Close()

	encoder := json.NewEncoder(jsonFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encode manifest JSON: %w", err)
	}
	return nil
}

// Load reads a manifest previously written by Write.
func (m *Manifest) Load(filePath string) error {
	jsonFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("couldn't open manifest file %q: %w", filePath, err)
	}
	defer jsonFile.Close()

	decoder := json.NewDecoder(jsonFile)
	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("decode manifest JSON: %w", err)
	}
	return nil
}

// writeManifest persists the run manifest when a manifest directory is
// configured.
func (o *Operator) writeManifest(m *Manifest) {
	if o.cfg.Backup.ManifestDir == "" || m == nil {
		return
	}
	if err := m.Write(o.cfg.Backup.ManifestDir); err != nil {
		o.log.Warn("manifest write failed", "error", err.Error())
	}
}

func ensureDirectoryExist(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dirPath, err)
	}
	return nil
}
