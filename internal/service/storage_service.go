package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where report artifacts live.
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// LocalStorageProvider writes artifacts under the configured directory.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	dst := filepath.Join(p.Config.LocalPath, key)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(p.Config.LocalPath, key))
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, key))
}

// MinioStorageProvider stores artifacts in a MinIO bucket.
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, key, minio.RemoveObjectOptions{})
}

type StorageService struct {
	provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			panic(fmt.Sprintf("failed to init minio storage: %v", err))
		}
		provider = p
	default:
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}
	return &StorageService{provider: provider}
}

func (s *StorageService) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return s.provider.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}

func (s *StorageService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.provider.Download(ctx, key)
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.provider.Delete(ctx, key)
}
