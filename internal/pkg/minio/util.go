package minio

import (
	"Quill/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Storage 主存储桶上的对象读写
type Storage struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
	publicSSL      bool
}

func NewStorage(client *minio.Client, cfg config.MinIOConfig) *Storage {
	endpoint, useSSL := cfg.ExternalEndpoint, cfg.ExternalUseSSL
	if endpoint == "" {
		endpoint, useSSL = cfg.InternalEndpoint, cfg.InternalUseSSL
	}
	return &Storage{
		client:         client,
		bucket:         cfg.MainBucket,
		publicEndpoint: endpoint,
		publicSSL:      useSSL,
	}
}

// PutObject 上传文件到MinIO
func (s *Storage) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return info.Key, nil
}

// RemoveObject 删除MinIO中的文件
func (s *Storage) RemoveObject(ctx context.Context, objectName string) error {
	if s.client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL 获取文件的公共访问URL
func (s *Storage) PublicURL(objectName string) string {
	protocol := "http"
	if s.publicSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, strings.TrimSuffix(s.publicEndpoint, "/"), s.bucket, strings.TrimPrefix(objectName, "/"))
}
