package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/google/uuid"
)

// Kind 上传类别，决定允许的文件类型。
type Kind int

const (
	KindImage    Kind = iota // 车辆图片：jpeg/png/webp
	KindDocument             // 客户证件/驾照：仅 PDF
)

// Store 本地磁盘文件存储。文件名使用 uuid + 原始扩展名，避免覆盖。
type Store struct {
	dir     string
	maxSize int64
}

func NewStore(dir string, maxSizeMB int64) (*Store, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &Store{dir: dir, maxSize: maxSizeMB << 20}, nil
}

// Save 校验类型与大小后落盘，返回相对路径。
func (s *Store) Save(fh *multipart.FileHeader, kind Kind) (string, error) {
	if fh == nil {
		return "", apperr.New(apperr.KindValidation, "file is required")
	}
	if fh.Size > s.maxSize {
		return "", apperr.New(apperr.KindValidation,
			fmt.Sprintf("file exceeds %dMB limit", s.maxSize>>20))
	}
	if err := checkContentType(fh, kind); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return dstPath, nil
}

func checkContentType(fh *multipart.FileHeader, kind Kind) error {
	ct := strings.ToLower(fh.Header.Get("Content-Type"))
	switch kind {
	case KindDocument:
		if !strings.Contains(ct, "pdf") {
			return apperr.New(apperr.KindValidation, "only PDF documents are allowed")
		}
	case KindImage:
		if !strings.HasPrefix(ct, "image/") {
			return apperr.New(apperr.KindValidation, "only image files are allowed")
		}
	}
	return nil
}
