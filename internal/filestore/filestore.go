// Package filestore stores recipe images on the local volume or in an
// S3-compatible bucket.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/mlazarev/foodgram/internal/fileserver"
)

const recipesDir = "recipes"

const DefaultURLPrefix = "/media"

// FileStore persists a recipe image and returns the URL it will be
// served from.
type FileStore interface {
	WriteRecipeImage(ctx context.Context, filename, contentType string, data []byte) (url string, err error)
	DeleteRecipeImage(ctx context.Context, url string) error
}

// Local writes under a served volume directory.
type Local struct {
	fs        *fileserver.FileServer
	urlPrefix string
	host      string
}

var _ FileStore = (*Local)(nil)

func NewLocal(baseDirectory, urlPrefix, host string) *Local {
	return &Local{
		fs:        fileserver.New(baseDirectory),
		urlPrefix: strings.Trim(urlPrefix, "/"),
		host:      strings.TrimRight(host, "/"),
	}
}

func (l *Local) WriteRecipeImage(_ context.Context, filename, _ string, data []byte) (string, error) {
	relPath := path.Join(recipesDir, filename)
	if _, err := l.fs.Write(relPath, data); err != nil {
		return "", fmt.Errorf("writing recipe image: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", l.host, l.urlPrefix, relPath), nil
}

func (l *Local) DeleteRecipeImage(_ context.Context, url string) error {
	return l.fs.Delete(relFromURL(url, l.host, l.urlPrefix))
}

// S3 writes to an S3-compatible bucket via the minio client.
type S3 struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ FileStore = (*S3)(nil)

func NewS3(client *minio.Client, bucket, publicURL string) *S3 {
	return &S3{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3) WriteRecipeImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := path.Join(recipesDir, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("uploading recipe image: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

func (s *S3) DeleteRecipeImage(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.publicURL+"/"+s.bucket+"/")
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func relFromURL(url, host, urlPrefix string) string {
	rel := strings.TrimPrefix(url, host)
	rel = strings.Trim(rel, "/")
	rel = strings.TrimPrefix(rel, urlPrefix)
	return strings.TrimLeft(rel, "/")
}
