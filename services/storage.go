package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedPhotoExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

func AllowedPhotoExtension(filename string) bool {
	return allowedPhotoExts[strings.ToLower(filepath.Ext(filename))]
}

// UniquePhotoName keeps the original extension but replaces the name with a
// random one so uploads can never collide or traverse paths.
func UniquePhotoName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// SavePhoto persists an uploaded file under dir and returns the generated
// filename and the path it was written to.
func SavePhoto(fh *multipart.FileHeader, dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := UniquePhotoName(fh.Filename)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write photo file: %w", err)
	}

	return name, path, nil
}
