package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"recipe-browser/internal/pkg/common"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchConvertsToJPEG(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tacos.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	svc := NewService(1<<20, 5*time.Second)

	out, err := svc.Fetch(context.Background(), srv.URL+"/tacos.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("expected JPEG output: %v", err)
	}

	_, err = svc.Fetch(context.Background(), srv.URL+"/missing.png")
	var ce *common.CustomError
	if !errors.As(err, &ce) || ce.Code != common.ErrImageFetchFailed.Code {
		t.Fatalf("expected IMAGE_FETCH_FAILED, got %v", err)
	}
}

func TestFetchDataURI(t *testing.T) {
	svc := NewService(1<<20, time.Second)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))

	out, err := svc.Fetch(context.Background(), uri)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("expected JPEG output: %v", err)
	}
}

func TestFetchErrors(t *testing.T) {
	data := pngBytes(t)
	tests := []struct {
		name     string
		maxSize  int64
		source   string
		wantCode string
	}{
		{"unsupported scheme", 1 << 20, "ftp://example.com/a.png", common.ErrInvalidImageURL.Code},
		{"bad base64", 1 << 20, "data:image/png;base64,@@@", common.ErrInvalidImageURL.Code},
		{"not an image", 1 << 20, "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello")), common.ErrInvalidImageFormat.Code},
		{"too large", 8, "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), common.ErrInvalidImageSize.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.maxSize, time.Second)
			_, err := svc.Fetch(context.Background(), tt.source)
			var ce *common.CustomError
			if !errors.As(err, &ce) {
				t.Fatalf("expected CustomError, got %v", err)
			}
			if ce.Code != tt.wantCode {
				t.Fatalf("expected %s, got %s", tt.wantCode, ce.Code)
			}
		})
	}
}

func TestFetchRejectsOversizedDownload(t *testing.T) {
	payload := bytes.Repeat([]byte{0xff}, 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		if r.URL.Path == "/chunked.jpg" {
			// 不帶 Content-Length，分段送出
			flusher := w.(http.Flusher)
			for i := 0; i < len(payload); i += 512 {
				_, _ = w.Write(payload[i : i+512])
				flusher.Flush()
			}
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	svc := NewService(64, 5*time.Second)
	for _, path := range []string{"/sized.jpg", "/chunked.jpg"} {
		t.Run(path, func(t *testing.T) {
			_, err := svc.Fetch(context.Background(), srv.URL+path)
			var ce *common.CustomError
			if !errors.As(err, &ce) || ce.Code != common.ErrInvalidImageSize.Code {
				t.Fatalf("expected INVALID_IMAGE_SIZE, got %v", err)
			}
		})
	}
}
