// Package adapter contains infrastructure adapters for the scout CLI.
package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "scout.dev/pkg/scout/internal/model"
)

// ManifestLoader reads asset manifests. It hides direct os access so
// the workflow logic can be tested against in-memory manifests.
type ManifestLoader interface {
	// Load parses the manifest file at path.
	Load(path m.Path) (m.Manifest, error)
}

// LocalManifestLoader loads YAML manifests from the local filesystem.
type LocalManifestLoader struct{}

// NewLocalManifestLoader constructs a LocalManifestLoader ready to be
// wired into the workflow.
func NewLocalManifestLoader() *LocalManifestLoader {
	return &LocalManifestLoader{}
}

// Load parses the YAML manifest at path.
func (l *LocalManifestLoader) Load(path m.Path) (m.Manifest, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	for i, asset := range manifest.Assets {
		if asset.Ref == "" {
			return m.Manifest{}, fmt.Errorf("manifest %s: asset %d has an empty ref", path, i)
		}

		if asset.Kind == "" {
			manifest.Assets[i].Kind = m.KindOther
		}
	}

	return manifest, nil
}
