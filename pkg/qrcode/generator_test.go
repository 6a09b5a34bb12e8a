package qrcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmatoso/checkpix-backend/pkg/config"
	"github.com/dmatoso/checkpix-backend/pkg/storage/local"
)

func testGenerator(t *testing.T) (*Generator, *local.Store) {
	t.Helper()
	cfg := config.StorageConfig{PublicDir: t.TempDir(), QRCodeDir: "qrcodes"}
	store, err := local.NewStore(cfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewGenerator(store, cfg), store
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("1001"); got != "qrcode_1001.png" {
		t.Fatalf("ArtifactName = %q", got)
	}
}

func TestEnsureArtifactRenders(t *testing.T) {
	gen, store := testGenerator(t)

	path, err := gen.EnsureArtifact("1001", "00020126pixpayload")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if path != "/qrcodes/qrcode_1001.png" {
		t.Fatalf("path = %q", path)
	}
	if !store.Exists("qrcodes", "qrcode_1001.png") {
		t.Fatal("artifact not written")
	}
}

func TestEnsureArtifactReusesExistingFile(t *testing.T) {
	gen, store := testGenerator(t)

	if _, err := gen.EnsureArtifact("1001", "00020126pixpayload"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	// Overwrite with sentinel bytes: a second call must not re-render.
	full := filepath.Join(store.Root(), "qrcodes", "qrcode_1001.png")
	if err := os.WriteFile(full, []byte("sentinel"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	path, err := gen.EnsureArtifact("1001", "00020126pixpayload")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if path != "/qrcodes/qrcode_1001.png" {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "sentinel" {
		t.Fatal("existing artifact was re-rendered")
	}
}
