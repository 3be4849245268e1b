package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"
)

func TestArchiveAssetsWithManifest(t *testing.T) {
	mod := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := ArchiveAssets([]Asset{
		{Filename: "hero.png", MIME: "image/png", Data: []byte("a")},
		{Filename: "side.png", MIME: "image/png", Data: []byte("b")},
	}, "===== hero =====\nprompt", mod)
	if err != nil {
		t.Fatalf("ArchiveAssets: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if len(names) != 3 || names[0] != "hero.png" || names[2] != ManifestName {
		t.Fatalf("entries = %v", names)
	}
	rc, err := zr.File[2].Open()
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "===== hero =====\nprompt" {
		t.Fatalf("manifest = %q", body)
	}

	again, _ := ArchiveAssets([]Asset{
		{Filename: "hero.png", Data: []byte("a")},
		{Filename: "side.png", Data: []byte("b")},
	}, "===== hero =====\nprompt", mod)
	if !bytes.Equal(data, again) {
		t.Fatal("archives of identical input should be identical")
	}
}

func TestArchiveAssetsRejectsDuplicates(t *testing.T) {
	_, err := ArchiveAssets([]Asset{{Filename: "hero.png"}, {Filename: "hero.png"}}, "", time.Time{})
	if err == nil {
		t.Fatal("expected duplicate entry error")
	}
}
