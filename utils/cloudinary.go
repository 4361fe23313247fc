package utils

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/clothique/ecommerce-backend/internal/config"
)

func newCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		config.GetEnv("CLOUDINARY_CLOUD_NAME", ""),
		config.GetEnv("CLOUDINARY_API_KEY", ""),
		config.GetEnv("CLOUDINARY_API_SECRET", ""),
	)
}

// UploadToCloudinary streams a product image to Cloudinary and returns its
// secure URL.
func UploadToCloudinary(file io.Reader, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cld, err := newCloudinary()
	if err != nil {
		return "", err
	}

	uniqueFilename := true
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       filename,
		Folder:         "clothique/products",
		UniqueFilename: &uniqueFilename,
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

// CloudinaryPublicID extracts the public id from a Cloudinary secure URL so
// the asset can be destroyed later. Returns "" for URLs it cannot parse.
func CloudinaryPublicID(secureURL string) string {
	marker := "/upload/"
	idx := strings.Index(secureURL, marker)
	if idx < 0 {
		return ""
	}
	rest := secureURL[idx+len(marker):]
	// Skip the version segment (v1234567890/).
	if slash := strings.Index(rest, "/"); slash > 0 && strings.HasPrefix(rest, "v") {
		rest = rest[slash+1:]
	}
	if dot := strings.LastIndex(rest, "."); dot > 0 {
		rest = rest[:dot]
	}
	return rest
}

// DeleteFromCloudinary removes an uploaded image by its public id. Used when
// a product image is replaced or the product deleted.
func DeleteFromCloudinary(publicID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cld, err := newCloudinary()
	if err != nil {
		return err
	}

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
