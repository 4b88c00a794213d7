package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
)

func multipartFile(t *testing.T, field, filename, contentType, body string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="` + field + `"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(body)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	fhs := req.MultipartForm.File[field]
	if len(fhs) != 1 {
		t.Fatalf("expected one file, got %d", len(fhs))
	}
	return fhs[0]
}

func TestSaveDocumentRejectsNonPDF(t *testing.T) {
	store, err := NewStore(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	fh := multipartFile(t, "file_document", "doc.txt", "text/plain", "hello")
	if _, err := store.Save(fh, KindDocument); err == nil {
		t.Fatalf("expected rejection for non-PDF document")
	} else if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %d", apperr.KindOf(err))
	}
}

func TestSaveDocumentPDF(t *testing.T) {
	store, err := NewStore(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	fh := multipartFile(t, "file_document", "doc.pdf", "application/pdf", "%PDF-1.4")
	path, err := store.Save(fh, KindDocument)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Fatalf("expected .pdf suffix, got %s", path)
	}
}

func TestSaveImageAllowsJPEG(t *testing.T) {
	store, err := NewStore(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	fh := multipartFile(t, "image", "car.jpg", "image/jpeg", "fakejpegdata")
	if _, err := store.Save(fh, KindImage); err != nil {
		t.Fatalf("Save image: %v", err)
	}
}
