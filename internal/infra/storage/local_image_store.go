package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// 商品画像をローカルディスクに保存する。
// ファイル名はUUIDに付け替えて衝突と上書きを避ける。
type LocalImageStore struct {
	dir string
}

// DI
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Save は画像を保存して公開URLパス（/uploads/...）を返す。
func (s *LocalImageStore) Save(filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return "/uploads/" + name, nil
}
