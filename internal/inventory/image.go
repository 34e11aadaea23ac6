package inventory

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"envanter-backend/internal/config"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrUnsupportedImage desteklenmeyen uzantı veya çözülemeyen görsel verisi.
var ErrUnsupportedImage = errors.New("desteklenmeyen görsel formatı")

// genişliği bunu aşan görseller kaydedilmeden önce küçültülür
const maxImageWidth = 1600

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SaveProductImage yüklenen görseli UUID isimle ürün görselleri klasörüne yazar
// ve kaydedilen dosya adını döndürür.
func SaveProductImage(cfg *config.Config, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", ErrUnsupportedImage
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(cfg.ProductImagePath, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if err := imaging.Save(img, filepath.Join(cfg.ProductImagePath, name)); err != nil {
		return "", err
	}

	return name, nil
}

// RemoveProductImage eski görsel dosyasını siler; dosya yoksa sessizce geçer.
func RemoveProductImage(cfg *config.Config, name string) {
	if name == "" {
		return
	}
	_ = os.Remove(filepath.Join(cfg.ProductImagePath, name))
}
