package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloudinaryPublicID(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1700000000/clothique/products/abc-123.jpg"
	assert.Equal(t, "clothique/products/abc-123", CloudinaryPublicID(url))
}

func TestCloudinaryPublicIDWithoutVersionSegment(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/clothique/products/abc-123.png"
	assert.Equal(t, "clothique/products/abc-123", CloudinaryPublicID(url))
}

func TestCloudinaryPublicIDUnparseable(t *testing.T) {
	assert.Empty(t, CloudinaryPublicID(""))
	assert.Empty(t, CloudinaryPublicID("https://example.com/image.jpg"))
}
