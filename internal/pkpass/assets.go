package pkpass

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"
)

// Reserved archive names. Template files may not use them.
const (
	PassJSONName     = "pass.json"
	ManifestJSONName = "manifest.json"
	SignatureName    = "signature"
)

// File is a named entry in a pass archive
type File struct {
	Name string
	Data []byte
}

// LoadAssets reads the template images that are added to the archive.
// Each file is stored under its base name and must be a PNG.
func LoadAssets(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		name := filepath.Base(path)

		if err := validateAssetName(name); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, NewAssetError(fmt.Sprintf("duplicate asset %s", name))
		}
		seen[name] = true

		data, err := readScopedFile(path)
		if err != nil {
			return nil, WrapAssetError(err, fmt.Sprintf("failed to load asset %s", name))
		}

		if err := validatePNG(name, data); err != nil {
			return nil, err
		}

		files = append(files, File{Name: name, Data: data})
	}

	return files, nil
}

func validateAssetName(name string) error {
	switch name {
	case "", ".", string(filepath.Separator):
		return NewAssetError("asset path is required")
	case PassJSONName, ManifestJSONName, SignatureName:
		return NewAssetError(fmt.Sprintf("asset name %s is reserved", name))
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		return NewAssetError(fmt.Sprintf("asset %s is not a .png file", name))
	}
	return nil
}

func validatePNG(name string, data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return WrapAssetError(err, fmt.Sprintf("asset %s is not a valid PNG", name))
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return NewAssetError(fmt.Sprintf("asset %s has no pixels", name))
	}
	return nil
}
