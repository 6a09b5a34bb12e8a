package local

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dmatoso/checkpix-backend/pkg/config"
)

var fileNameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Store persists public assets (QR images, uploads) under a single root
// directory that the router also serves statically.
type Store struct {
	root string
}

// NewStore ensures the public root exists and returns a store bound to it.
func NewStore(cfg config.StorageConfig) (*Store, error) {
	root := cfg.PublicDir
	if root == "" {
		return nil, errors.New("public dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the filesystem root served as /.
func (s *Store) Root() string {
	return s.root
}

// Save writes data under <root>/<dir>/<name>, creating the subdirectory on
// first use, and returns the public path.
func (s *Store) Save(dir, name string, data []byte) (string, error) {
	clean := SanitizeFileName(name)
	if clean == "" {
		return "", errors.New("file name is required")
	}
	target := filepath.Join(s.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", target, err)
	}
	full := filepath.Join(target, clean)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", full, err)
	}
	return s.PublicPath(dir, clean), nil
}

// Exists reports whether the asset is already on disk.
func (s *Store) Exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(s.root, dir, SanitizeFileName(name)))
	return err == nil
}

// PublicPath returns the URL path the router serves the asset under.
func (s *Store) PublicPath(dir, name string) string {
	return "/" + dir + "/" + SanitizeFileName(name)
}

// SanitizeFileName strips path separators and anything outside a conservative
// character set.
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return fileNameSanitizeRe.ReplaceAllString(base, "_")
}
