package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wordbook/wordbook/internal/config"
)

// ImageStorage is a thin wrapper around the minio client used to host word images.
type ImageStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageStorage creates a MinIO client and ensures the bucket exists.
func NewImageStorage(ctx context.Context, cfg config.MinIOConfig) (*ImageStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &ImageStorage{client: mc, bucket: cfg.Bucket, publicURL: PublicBase(cfg)}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// PublicBase is the URL prefix under which uploaded objects are served. It
// defaults to <scheme>://<endpoint>/<bucket> when MINIO_PUBLIC_URL is unset.
func PublicBase(cfg config.MinIOConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http://"
	if cfg.UseSSL {
		scheme = "https://"
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	return scheme + strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
}

// ObjectKey builds a collision-free key for an image of the given word.
func ObjectKey(origin, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, origin)
	return path.Join("words", fmt.Sprintf("%s_%s%s", slug, uuid.New().String()[:8], ext))
}

// UploadImage stores the image and returns its public URL.
func (s *ImageStorage) UploadImage(ctx context.Context, origin, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(origin, filename)
	if _, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
