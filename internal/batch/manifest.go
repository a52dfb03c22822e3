package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Kind  Kind   `json:"kind"`
	Job   string `json:"job"`
	Frame int    `json:"frame"`
	Image string `json:"image"`
	Thumb string `json:"thumb,omitempty"`
}

// WriteManifest writes manifest.json listing every frame of the successful results.
func WriteManifest(path string, results []Result) error {
	entries := []ManifestEntry{}
	for _, r := range results {
		if !r.Success {
			continue
		}
		for i, f := range r.Files {
			e := ManifestEntry{
				Kind:  r.Kind,
				Job:   r.Name,
				Frame: i,
				Image: filepath.ToSlash(f),
			}
			if i < len(r.Thumbs) {
				e.Thumb = filepath.ToSlash(r.Thumbs[i])
			}
			entries = append(entries, e)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
