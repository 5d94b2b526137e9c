package lut

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// DefaultAssetName is the file name of the SPWM duty table asset.
const DefaultAssetName = "spwm.data"

const (
	assetFileMode = 0o644
	assetDirMode  = 0o755
)

// WriteFile atomically writes data to dir/name and returns the final path.
// dir is created if needed. The data is written to a temporary file in dir,
// synced and renamed over the target, so readers see either the previous
// asset or the complete new one.
func WriteFile(dir, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("lut: asset name must be a plain file name: %q", name)
	}

	if dir == "" {
		return "", errors.New("lut: asset directory must not be empty")
	}

	err := os.MkdirAll(dir, assetDirMode)
	if err != nil {
		return "", fmt.Errorf("lut: create asset directory: %w", err)
	}

	path := filepath.Join(dir, name)

	err = renameio.WriteFile(path, data, assetFileMode)
	if err != nil {
		return "", fmt.Errorf("lut: write %s: %w", path, err)
	}

	return path, nil
}

// ReadFile reads and decodes a table written with [WriteFile].
func ReadFile(path string, w Width) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lut: read %s: %w", path, err)
	}

	return Decode(data, w)
}
