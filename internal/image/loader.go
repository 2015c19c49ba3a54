// Package image resolves wallpaper inputs and decodes them into pixels.
package image

import (
	"context"
	"crypto/rand"
	"fmt"
	"image"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rze-theme/rze/internal/util/imagecache"
)

// SupportedImageExtensions returns the file extensions treated as images
// when scanning directories.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".avif"}
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ValidateImagePath checks that path is a URL, a directory, or an image file.
// Files with an unknown extension must at least decode with a registered
// Go image format.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	// URLs are checked when fetched.
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}

	if info.IsDir() || isImageFile(path) {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - user-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// ScanDirectoryForImages returns the image files directly inside dirPath,
// sorted by name. Symlinks are followed; subdirectories are not.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// Stat the target so symlinked files count.
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}

	return imageFiles, nil
}

// SelectRandomImage picks one path uniformly at random.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return imagePaths[idx.Int64()], nil
}

// ResolveImagePath turns a user argument into a local image file.
// Directories yield a random image inside them; URLs are downloaded into
// cacheDir (or reused from it).
func ResolveImagePath(ctx context.Context, path, cacheDir string) (string, error) {
	if IsURL(path) {
		return Fetch(ctx, path, cacheDir)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return filepath.Abs(path)
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}

	selected, err := SelectRandomImage(imageFiles)
	if err != nil {
		return "", err
	}
	return filepath.Abs(selected)
}

// Fetch downloads an HTTPS image into cacheDir and returns the local path.
func Fetch(ctx context.Context, url, cacheDir string) (string, error) {
	path, err := imagecache.DownloadAndCache(ctx, url, imagecache.CacheOptions{CacheDir: cacheDir})
	if err != nil {
		return "", fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return path, nil
}
