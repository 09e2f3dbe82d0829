package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/config"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
)

// PhotoStorage — объектное хранилище фотографий заказов.
type PhotoStorage struct {
	client   *minio.Client
	endpoint string
	bucket   string
}

// NewPhotoStorage создаёт клиента и проверяет существование бакета.
func NewPhotoStorage(ctx context.Context, cfg *config.Config) (*PhotoStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета '%s': %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета '%s': %w", cfg.MinioBucket, err)
		}
		logger.Log.Info("bucket created", zap.String("bucket", cfg.MinioBucket))
	}

	logger.Log.Info("connected to object storage", zap.String("endpoint", cfg.MinioEndpoint))
	return &PhotoStorage{client: client, endpoint: cfg.MinioEndpoint, bucket: cfg.MinioBucket}, nil
}

// Upload сохраняет одну фотографию и возвращает имя объекта.
func (s *PhotoStorage) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки фото '%s': %w", objectName, err)
	}
	return objectName, nil
}

// ObjectURL возвращает публичный адрес объекта для превью и уведомлений.
func (s *PhotoStorage) ObjectURL(objectName string) string {
	return fmt.Sprintf("https://%s/%s/%s", s.endpoint, s.bucket, objectName)
}
