package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedPhotoExtension(t *testing.T) {
	allowed := []string{"photo.png", "photo.jpg", "photo.jpeg", "PHOTO.PNG", "a.b.JPEG"}
	for _, name := range allowed {
		assert.True(t, AllowedPhotoExtension(name), name)
	}

	rejected := []string{"photo.gif", "photo.exe", "photo", "photo.png.sh", ".png.txt", ""}
	for _, name := range rejected {
		assert.False(t, AllowedPhotoExtension(name), name)
	}
}

func TestUniquePhotoName(t *testing.T) {
	first := UniquePhotoName("kitchen.PNG")
	second := UniquePhotoName("kitchen.PNG")

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "kitchen")
	assert.Contains(t, first, ".png")
}
