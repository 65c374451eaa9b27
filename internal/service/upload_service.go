package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/constants"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/objectstore"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	constants.UploadSceneProduct:  {},
	constants.UploadSceneCategory: {},
	constants.UploadScenePost:     {},
	constants.UploadSceneCommon:   {},
}

// UploadService 图片上传服务，文件写入对象存储
type UploadService struct {
	cfg   config.UploadConfig
	store objectstore.Store
	now   func() time.Time
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg config.UploadConfig, store objectstore.Store) *UploadService {
	return &UploadService{cfg: cfg, store: store, now: time.Now}
}

// SaveFile 校验并保存上传文件，返回可访问的 URL
func (s *UploadService) SaveFile(ctx context.Context, file *multipart.FileHeader, scene string) (string, error) {
	if file == nil {
		return "", ErrUploadTypeInvalid
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.Save(ctx, src, file.Filename, file.Size, scene)
}

// Save 校验大小、扩展名、MIME 与图片尺寸后写入存储
func (s *UploadService) Save(ctx context.Context, src io.ReadSeeker, filename string, size int64, scene string) (string, error) {
	if s.cfg.MaxSize > 0 && size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: max %d MB", ErrUploadTooLarge, s.cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return "", fmt.Errorf("%w: extension %s", ErrUploadTypeInvalid, ext)
		}
	}

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.AllowedTypes) > 0 && !isAllowedContentType(contentType, s.cfg.AllowedTypes) {
		return "", fmt.Errorf("%w: type %s", ErrUploadTypeInvalid, contentType)
	}

	if strings.HasPrefix(contentType, "image/") {
		width, height, err := decodeImageDimensions(src, contentType)
		if err != nil {
			return "", err
		}
		if s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth {
			return "", fmt.Errorf("%w: width exceeds %d", ErrUploadTooLarge, s.cfg.MaxWidth)
		}
		if s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight {
			return "", fmt.Errorf("%w: height exceeds %d", ErrUploadTooLarge, s.cfg.MaxHeight)
		}
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := s.buildKey(scene, ext)
	url, err := s.store.Put(ctx, key, contentType, src, size)
	if err != nil {
		logger.Warnw("upload_store_put_failed", "key", key, "error", err)
		return "", err
	}
	return url, nil
}

// buildKey 生成 scene/yyyy/mm/uuid.ext
func (s *UploadService) buildKey(scene, ext string) string {
	now := s.now()
	return path.Join(normalizeUploadScene(scene), now.Format("2006"), now.Format("01"), uuid.New().String()+ext)
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return constants.UploadSceneCommon
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(contentType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid webp: %v", ErrUploadTypeInvalid, err)
		}
		return width, height, nil
	}

	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid image: %v", ErrUploadTypeInvalid, err)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("webp header mismatch")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, errors.New("webp chunk size invalid")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		if chunkType == "VP8X" {
			if len(data) < 10 {
				return 0, 0, errors.New("vp8x chunk too short")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		}
		if chunkType == "VP8 " {
			if len(data) < 10 {
				return 0, 0, errors.New("vp8 chunk too short")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		}
		if chunkType == "VP8L" {
			if len(data) < 5 {
				return 0, 0, errors.New("vp8l chunk too short")
			}
			if data[0] != 0x2f {
				return 0, 0, errors.New("vp8l signature invalid")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			width := int(bits&0x3FFF) + 1
			height := int((bits>>14)&0x3FFF) + 1
			return width, height, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
