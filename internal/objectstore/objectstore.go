/**
* Name: 			objectstore.go
* Description: 		사용자 업로드 파일 저장
* Workflow: 		계정별 키 생성 후 S3 호환 버킷 또는 로컬 디스크에 저장, 접근 URL 반환
 */

package objectstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUpload = errors.New("upload failed")

// Backend stores bytes under a key and reports the URL it can be fetched from.
type Backend interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(key string) string
}

type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// ObjectKey returns user_{id}/{uuid}{ext}. Keys are never reused.
func ObjectKey(accountID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return fmt.Sprintf("%s%s%s", AccountPrefix(accountID), uuid.NewString(), ext)
}

// AccountPrefix is the key prefix every object of an account lives under.
func AccountPrefix(accountID int64) string {
	return fmt.Sprintf("user_%d/", accountID)
}

func (s *Store) Upload(ctx context.Context, data []byte, accountID int64, filename, contentType string) (string, error) {
	key := ObjectKey(accountID, filename)
	if err := s.backend.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return s.backend.URL(key), nil
}
