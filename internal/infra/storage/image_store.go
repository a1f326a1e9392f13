package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ImageStore 儲存作品圖檔, 回傳可公開存取的 URL
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

type LocalImageStore struct {
	dir     string
	baseURL string
}

// NewLocalImageStore 檔案寫到 dir, URL 為 baseURL/<uuid><ext>
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *LocalImageStore) Dir() string {
	return l.dir
}

func (l *LocalImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return l.baseURL + path.Join("/", name), nil
}
