package helper

import (
	"bytes"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Uploaded images wider than this get resized down before encoding.
	maxImageWidth = 1600

	webpQuality = 80
)

// ConvertImageToWebP decodes an uploaded image, resizes it when it is wider
// than maxImageWidth, and re-encodes it as WebP.
func ConvertImageToWebP(fileHeader *multipart.FileHeader) (*bytes.Buffer, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf, nil
}

// SaveUploadBuffer writes the buffer under the upload root and returns the
// relative path.
func SaveUploadBuffer(folder, filename string, data *bytes.Buffer) (string, error) {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "./uploads"
	}
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	full := filepath.Join(dir, filename)
	if err := os.WriteFile(full, data.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(folder, filename)), nil
}

// DeleteUploadedFile removes a stored file; a missing file is not an error.
func DeleteUploadedFile(relPath string) error {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "./uploads"
	}
	err := os.Remove(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Strip everything but letters, digits, dot, dash, underscore
func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(originalFilename, forcedExt string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	safe := sanitizeFilename(originalFilename)
	if forcedExt != "" {
		safe = strings.TrimSuffix(safe, filepath.Ext(safe)) + forcedExt
	}
	return fmt.Sprintf("%s-%s-%s", timestamp, uuidStr, safe)
}
