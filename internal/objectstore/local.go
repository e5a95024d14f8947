package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskBackend keeps objects under a local directory, served back at /files/{key}.
type DiskBackend struct {
	root string
}

func NewDiskBackend(root string) (*DiskBackend, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("NewDiskBackend(): failed to create directory: %w", err)
	}
	return &DiskBackend{root: root}, nil
}

func (d *DiskBackend) Put(_ context.Context, key string, data []byte, _ string) error {
	path, err := d.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	// 키가 항상 새로 생성되므로 기존 파일 덮어쓰기 금지
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d *DiskBackend) URL(key string) string {
	return "/files/" + key
}

// Path resolves a key to a file inside the root, rejecting traversal.
func (d *DiskBackend) Path(key string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimPrefix(key, "/"))
	if clean == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}
