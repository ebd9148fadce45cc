// Package image 代理食譜圖片：下載、檢查大小與格式，統一轉為 JPEG。
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"recipe-browser/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // 支援 WebP
)

// jpegQuality 重新編碼品質
const jpegQuality = 85

// Service 圖片處理服務
type Service struct {
	maxSizeBytes int64
	client       *resty.Client
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64, timeout time.Duration) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "image/*"),
	}
}

// Fetch 取得圖片並轉為 JPEG，支援 http(s) 網址與 data:image/ URI
func (s *Service) Fetch(ctx context.Context, source string) ([]byte, error) {
	raw, err := s.read(ctx, source)
	if err != nil {
		return nil, err
	}

	// 檢查文件大小（data URI 在此檢查，下載時已先限制）
	if int64(len(raw)) > s.maxSizeBytes {
		return nil, s.sizeError(int64(len(raw)))
	}

	// 解碼圖片
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, common.ErrInvalidImageFormat.Wrap(fmt.Errorf("failed to decode image: %w", err))
	}

	// 檢查圖片格式
	if !isSupportedFormat(format) {
		return nil, common.ErrInvalidImageFormat.Wrap(fmt.Errorf("unsupported image format: %s", format))
	}

	// 原本就是 JPEG 時直接回傳
	if format == "jpeg" {
		return raw, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, common.ErrInternalError.Wrap(fmt.Errorf("failed to encode image as JPEG: %w", err))
	}

	common.LogDebug("圖片已轉為 JPEG",
		zap.String("format", format),
		zap.Int("original_size", len(raw)),
		zap.Int("jpeg_size", buf.Len()),
	)
	return buf.Bytes(), nil
}

func (s *Service) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return s.download(ctx, source)

	case strings.HasPrefix(source, "data:image/"):
		// 解析 base64 數據
		parts := strings.SplitN(source, ",", 2)
		if len(parts) != 2 || !strings.HasSuffix(parts[0], ";base64") {
			return nil, common.ErrInvalidImageURL.Wrap(fmt.Errorf("invalid base64 data format"))
		}
		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, common.ErrInvalidImageURL.Wrap(fmt.Errorf("failed to decode base64 data: %w", err))
		}
		return decoded, nil

	default:
		return nil, common.ErrInvalidImageURL.Wrap(fmt.Errorf("unsupported image source: %q", source))
	}
}

// download 下載圖片，超過大小上限時不讀完整個回應
func (s *Service) download(ctx context.Context, source string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(source)
	if err != nil {
		return nil, common.ErrImageFetchFailed.Wrap(fmt.Errorf("failed to download image: %w", err))
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, common.ErrImageFetchFailed.Wrap(
			fmt.Errorf("failed to download image: status code %d", resp.StatusCode()))
	}
	if resp.RawResponse.ContentLength > s.maxSizeBytes {
		return nil, s.sizeError(resp.RawResponse.ContentLength)
	}

	// 多讀一個位元組以判斷是否超過上限
	raw, err := io.ReadAll(io.LimitReader(body, s.maxSizeBytes+1))
	if err != nil {
		return nil, common.ErrImageFetchFailed.Wrap(fmt.Errorf("failed to read image: %w", err))
	}
	if int64(len(raw)) > s.maxSizeBytes {
		return nil, s.sizeError(int64(len(raw)))
	}
	return raw, nil
}

func (s *Service) sizeError(size int64) error {
	return common.ErrInvalidImageSize.Wrap(
		fmt.Errorf("image size %d exceeds maximum limit of %d bytes", size, s.maxSizeBytes))
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
