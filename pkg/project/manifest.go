package project

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pubgraph/pkg/errors"
)

// ManifestFile is the package manifest looked up in the project root.
const ManifestFile = "pubspec.yaml"

// Manifest holds the pubspec.yaml fields pubgraph uses.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// ReadManifest reads and validates root/pubspec.yaml.
//
// Returns a MANIFEST_NOT_FOUND error if the file does not exist, and an
// INVALID_MANIFEST error if it cannot be parsed or has no usable name.
func ReadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFile)
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "no %s in %s", ManifestFile, root)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailed, err, "read %s", path)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", ManifestFile)
	}
	if err := errors.ValidateProjectName(m.Name); err != nil {
		return nil, err
	}
	return &m, nil
}
