package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"canvas-cropper/internal/transform"

	"github.com/bytedance/sonic"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Source string           `json:"source"`
	Image  string           `json:"image,omitempty"`
	OK     bool             `json:"ok"`
	Error  string           `json:"error,omitempty"`
	State  *transform.State `json:"state,omitempty"`
}

// WriteManifest writes manifest.json listing every result. Image paths are
// relative to the manifest's directory when possible.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{Source: r.Source, OK: r.Success, Error: r.Error}
		if r.Success {
			e.Image = r.Output
			if rel, err := filepath.Rel(dir, r.Output); err == nil {
				e.Image = rel
			}
			state := r.State
			e.State = &state
		}
		entries[i] = e
	}

	data, err := sonic.ConfigStd.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
