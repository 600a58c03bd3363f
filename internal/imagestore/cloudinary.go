// Package imagestore инкапсулирует работу с внешним хранилищем изображений.
//
// Приложение хранит только secure URL загруженного изображения;
// public id для удаления выводится из URL.
package imagestore

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Store описывает операции хранилища изображений товаров.
type Store interface {
	// Upload загружает изображение (data URL или внешний URL) и возвращает его secure URL.
	Upload(ctx context.Context, image string) (string, error)
	// Destroy удаляет изображение по его URL. Отсутствие изображения не считается ошибкой.
	Destroy(ctx context.Context, imageURL string) error
}

// CloudinaryStore реализует Store поверх Cloudinary.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore создает хранилище из cloudinary-URL конфига.
func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	const op = "imagestore.NewCloudinaryStore"
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &CloudinaryStore{client: client, folder: folder}, nil
}

// Upload загружает изображение в настроенную папку и возвращает его secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, image string) (string, error) {
	const op = "imagestore.Upload"
	resp, err := s.client.Upload.Upload(ctx, image, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return resp.SecureURL, nil
}

// Destroy удаляет изображение по public id, выведенному из его URL.
func (s *CloudinaryStore) Destroy(ctx context.Context, imageURL string) error {
	const op = "imagestore.Destroy"
	publicID := s.publicIDFromURL(imageURL)
	if publicID == "" {
		return nil
	}
	if _, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// publicIDFromURL выводит public id из secure URL:
// последний сегмент пути без расширения, с префиксом папки.
func (s *CloudinaryStore) publicIDFromURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	base := path.Base(imageURL)
	name := strings.TrimSuffix(base, path.Ext(base))
	if name == "" || name == "." || name == "/" {
		return ""
	}
	return s.folder + "/" + name
}
