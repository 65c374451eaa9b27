package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/objectstore"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func newTestUploadService(t *testing.T, cfg config.UploadConfig) (*UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewUploadService(cfg, objectstore.NewLocalStore(dir, "/uploads"))
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) }
	return svc, dir
}

func TestUploadSaveWritesUnderSceneAndMonth(t *testing.T) {
	svc, dir := newTestUploadService(t, config.UploadConfig{
		MaxSize:           1 << 20,
		AllowedTypes:      []string{"image/png"},
		AllowedExtensions: []string{"png"},
	})
	data := encodeTestPNG(t, 4, 4)

	url, err := svc.Save(context.Background(), bytes.NewReader(data), "brake.png", int64(len(data)), "product")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/product/2026/03/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url: %s", url)
	}
	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(stored, data) {
		t.Fatalf("stored content mismatch")
	}
}

func TestUploadSaveRejections(t *testing.T) {
	svc, _ := newTestUploadService(t, config.UploadConfig{
		MaxSize:           4096,
		AllowedTypes:      []string{"image/png"},
		AllowedExtensions: []string{".png"},
		MaxWidth:          8,
	})
	small := encodeTestPNG(t, 2, 2)
	ctx := context.Background()

	if _, err := svc.Save(ctx, bytes.NewReader(small), "a.png", 8192, "product"); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("oversized file want ErrUploadTooLarge got %v", err)
	}
	if _, err := svc.Save(ctx, bytes.NewReader(small), "a.exe", int64(len(small)), "product"); !errors.Is(err, ErrUploadTypeInvalid) {
		t.Fatalf("bad extension want ErrUploadTypeInvalid got %v", err)
	}
	text := []byte("plain text pretending to be png")
	if _, err := svc.Save(ctx, bytes.NewReader(text), "a.png", int64(len(text)), "product"); !errors.Is(err, ErrUploadTypeInvalid) {
		t.Fatalf("bad mime want ErrUploadTypeInvalid got %v", err)
	}

	wide := encodeTestPNG(t, 16, 2)
	if _, err := svc.Save(ctx, bytes.NewReader(wide), "a.png", int64(len(wide)), "product"); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("wide image want ErrUploadTooLarge got %v", err)
	}
}

func TestNormalizeUploadScene(t *testing.T) {
	cases := map[string]string{
		"":          "common",
		" Product ": "product",
		"category":  "category",
		"banner":    "common",
	}
	for raw, want := range cases {
		if got := normalizeUploadScene(raw); got != want {
			t.Fatalf("normalizeUploadScene(%q) want %s got %s", raw, want, got)
		}
	}
}
