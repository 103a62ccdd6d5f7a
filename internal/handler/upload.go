package handler

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"catalog-service/pkg/config"
)

var errInvalidImage = errors.New("only .jpg, .jpeg, and .png files are allowed")

// saveImage stores an uploaded product image under the configured upload
// directory and returns the generated filename. An absent file is not an
// error; the empty filename means "no image supplied".
func saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", errInvalidImage
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := config.Get().Upload.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}
