// Image file loading and saving for running the effect outside a host
package imageio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// Loader handles image file operations
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads an image as an 8-bit BGR buffer, or grayscale when gray is set
func (l *Loader) Load(path string, gray bool) (gocv.Mat, error) {
	l.logger.WithField("path", path).Debug("Loading image")

	if !IsSupported(path) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", path)
	}

	flags := gocv.IMReadColor
	if gray {
		flags = gocv.IMReadGrayScale
	}

	mat := gocv.IMRead(path, flags)
	if mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded")

	return mat, nil
}

func (l *Loader) Save(mat gocv.Mat, path string) error {
	l.logger.WithField("path", path).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !IsSupported(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to save image: %s", path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	}).Info("Image saved")

	return nil
}

// IsSupported reports whether path has an extension we can read and write
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
