// internals/helpers/oss/oss_client.go
package helper

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

/*
OSSService: wrapper tipis di atas Aliyun OSS untuk kebutuhan controller:
upload multipart → public URL, dan hapus berdasarkan public URL.
Semua konfigurasi dari ENV: OSS_ENDPOINT, OSS_ACCESS_KEY_ID,
OSS_ACCESS_KEY_SECRET, OSS_BUCKET (+ optional OSS_PREFIX).
*/

type OSSService struct {
	bucket   *oss.Bucket
	endpoint string
	bucketNm string
	prefix   string
}

var ErrOSSNotConfigured = errors.New("OSS belum dikonfigurasi (cek ENV OSS_*)")

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	keyID := getEnv("OSS_ACCESS_KEY_ID")
	keySecret := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET")

	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, ErrOSSNotConfigured
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}

	return &OSSService{
		bucket:   bucket,
		endpoint: endpoint,
		bucketNm: bucketName,
		prefix:   strings.Trim(prefix, "/"),
	}, nil
}

// UploadToDir menyimpan file multipart ke dir (mis. "news", "submissions")
// dan mengembalikan public URL-nya. Nama objek dibuat acak agar tidak bentrok.
func (s *OSSService) UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", errors.New("file tidak ditemukan")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	key := s.objectKey(dir, uuid.New().String()+ext)

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.WithContext(ctx),
	}
	if err := s.bucket.PutObject(key, src, opts...); err != nil {
		return "", fmt.Errorf("oss put: %w", err)
	}

	return s.publicURL(key), nil
}

// DeleteByPublicURL menghapus objek berdasarkan public URL hasil UploadToDir.
// No-op bila URL bukan milik bucket ini.
func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, ok := s.keyFromPublicURL(publicURL)
	if !ok {
		return nil
	}
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) objectKey(dir, name string) string {
	parts := make([]string, 0, 3)
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func (s *OSSService) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketNm, host, key)
}

func (s *OSSService) keyFromPublicURL(publicURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(publicURL))
	if err != nil || u.Host == "" {
		return "", false
	}
	if !strings.HasPrefix(u.Host, s.bucketNm+".") {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}

// TryGetFile mengambil file multipart dari beberapa nama field yang umum dipakai FE.
func TryGetFile(c interface {
	FormFile(key string) (*multipart.FileHeader, error)
}, names ...string) *multipart.FileHeader {
	for _, n := range names {
		if fh, err := c.FormFile(n); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}
