package objectstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var keyPattern = regexp.MustCompile(`^user_7/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.png$`)

func TestObjectKeyFormat(t *testing.T) {
	key := ObjectKey(7, "photo.png")
	if !keyPattern.MatchString(key) {
		t.Fatalf("key %q does not match pattern", key)
	}
	if got := ObjectKey(7, "noext"); !strings.HasPrefix(got, "user_7/") || strings.Contains(got, ".") {
		t.Errorf("key without extension = %q", got)
	}
}

func TestObjectKeyUnique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		key := ObjectKey(7, "photo.png")
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key after %d uploads: %s", i, key)
		}
		seen[key] = struct{}{}
	}
}

func TestDiskUpload(t *testing.T) {
	root := t.TempDir()
	backend, err := NewDiskBackend(root)
	if err != nil {
		t.Fatal(err)
	}
	store := New(backend)

	url, err := store.Upload(context.Background(), []byte("png-bytes"), 7, "photo.png", "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	key := strings.TrimPrefix(url, "/files/")
	if !keyPattern.MatchString(key) {
		t.Fatalf("url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored %q", data)
	}
}

func TestDiskPathRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	backend, _ := NewDiskBackend(root)

	path, err := backend.Path("../../etc/passwd")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, root) {
		t.Errorf("path escaped root: %s", path)
	}
	if _, err := backend.Path("/"); err == nil {
		t.Error("expected error for empty key")
	}
}

type failingBackend struct{}

func (failingBackend) Put(context.Context, string, []byte, string) error { return errors.New("denied") }
func (failingBackend) URL(key string) string { return key }

func TestUploadWrapsError(t *testing.T) {
	_, err := New(failingBackend{}).Upload(context.Background(), nil, 1, "a.txt", "")
	if !errors.Is(err, ErrUpload) {
		t.Errorf("want ErrUpload, got %v", err)
	}
}

func TestS3URL(t *testing.T) {
	b, err := NewS3Backend(context.Background(), S3Config{
		Endpoint: "https://tos-s3-cn-beijing.volces.com/", Region: "cn-beijing",
		Bucket: "realego-data", AccessKey: "ak", SecretKey: "sk",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := b.URL("user_7/x.png"); got != "https://realego-data.tos-s3-cn-beijing.volces.com/user_7/x.png" {
		t.Errorf("URL = %q", got)
	}
}
