package service

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// ArtifactWriter dumps per-run intermediate results as JSON files for
// offline inspection. Each run gets its own subdirectory keyed by run ID.
// A nil writer, or one with an empty directory, silently discards writes:
// artifact dumps never fail or slow a run.
type ArtifactWriter struct {
	dir    string
	logger *slog.Logger
}

// NewArtifactWriter creates a writer rooted at dir. An empty dir disables
// writing.
func NewArtifactWriter(dir string) *ArtifactWriter {
	return &ArtifactWriter{dir: dir, logger: slog.Default()}
}

// Write serializes v to <dir>/<runID>/<name>. Errors are logged, not
// returned.
func (w *ArtifactWriter) Write(runID, name string, v any) {
	if w == nil || w.dir == "" {
		return
	}

	runDir := filepath.Join(w.dir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		w.logger.Warn("create artifact dir", "dir", runDir, "error", err)
		return
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		w.logger.Warn("marshal artifact", "name", name, "error", err)
		return
	}

	path := filepath.Join(runDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.logger.Warn("write artifact", "path", path, "error", err)
	}
}
