package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"github.com/dmatoso/checkpix-backend/pkg/config"
	"github.com/dmatoso/checkpix-backend/pkg/storage/local"
)

const imageSize = 256

// Generator renders PIX payment strings into PNG artifacts with a
// deterministic per-order filename, so repeated requests reuse the same file.
type Generator struct {
	store *local.Store
	dir   string
}

// NewGenerator binds the generator to the public asset store.
func NewGenerator(store *local.Store, cfg config.StorageConfig) *Generator {
	dir := cfg.QRCodeDir
	if dir == "" {
		dir = "qrcodes"
	}
	return &Generator{store: store, dir: dir}
}

// ArtifactName derives the filename for an order's QR image.
func ArtifactName(orderNumber string) string {
	return fmt.Sprintf("qrcode_%s.png", orderNumber)
}

// EnsureArtifact returns the public path of the QR image encoding pixCode,
// rendering it only when the file is not already on disk. Concurrent callers
// may both render; the derived filename makes the writes identical.
func (g *Generator) EnsureArtifact(orderNumber, pixCode string) (string, error) {
	name := ArtifactName(orderNumber)
	if g.store.Exists(g.dir, name) {
		return g.store.PublicPath(g.dir, name), nil
	}
	png, err := qr.Encode(pixCode, qr.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("encode qr image: %w", err)
	}
	path, err := g.store.Save(g.dir, name, png)
	if err != nil {
		return "", fmt.Errorf("save qr image: %w", err)
	}
	return path, nil
}
