// Package zip bundles a render's images and prompt manifest for download.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// ManifestName is the archive entry holding the compiled prompts.
const ManifestName = "prompt.txt"

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets writes assets in order followed by the manifest, when one
// is given. Entries carry modTime so archives of the same render are
// byte-identical.
func ArchiveAssets(assets []Asset, manifest string, modTime time.Time) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := map[string]struct{}{}
	write := func(name string, data []byte) error {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("zip: duplicate entry %q", name)
		}
		seen[name] = struct{}{}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modTime})
		if err != nil {
			return fmt.Errorf("zip: create %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("zip: write %s: %w", name, err)
		}
		return nil
	}
	for _, asset := range assets {
		if err := write(asset.Filename, asset.Data); err != nil {
			return nil, err
		}
	}
	if manifest != "" {
		if err := write(ManifestName, []byte(manifest)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
