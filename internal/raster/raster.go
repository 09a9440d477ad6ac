// Raster buffers exchanged between the host and the render callback
package raster

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MaxDimension bounds either side of a buffer the callback accepts
const MaxDimension = 16384

// Shape describes the geometry and sample type of a raster buffer
type Shape struct {
	Rows     int
	Cols     int
	Channels int
	Type     gocv.MatType
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Cols, s.Rows, s.Channels)
}

// ShapeOf returns the shape of mat
func ShapeOf(mat gocv.Mat) Shape {
	return Shape{
		Rows:     mat.Rows(),
		Cols:     mat.Cols(),
		Channels: mat.Channels(),
		Type:     mat.Type(),
	}
}

// SameShape reports whether a and b have identical geometry and sample type
func SameShape(a, b gocv.Mat) bool {
	return ShapeOf(a) == ShapeOf(b)
}

// Validate checks that mat is a buffer the host could legitimately hand us
func Validate(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("buffer is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	channels := mat.Channels()
	if channels < 1 || channels > 4 {
		return fmt.Errorf("unsupported channel count: %d", channels)
	}

	if mat.Cols() > MaxDimension || mat.Rows() > MaxDimension {
		return fmt.Errorf("buffer too large: %dx%d (max: %d)", mat.Cols(), mat.Rows(), MaxDimension)
	}

	return nil
}

// Zeros allocates a zero-filled buffer
func Zeros(rows, cols int, mt gocv.MatType) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, mt)
}

// Clone returns an independent copy of mat, or an empty Mat for an empty input
func Clone(mat gocv.Mat) gocv.Mat {
	if mat.Empty() {
		return gocv.NewMat()
	}
	return mat.Clone()
}

// Equal reports whether a and b have the same shape and identical samples
func Equal(a, b gocv.Mat) bool {
	if !SameShape(a, b) {
		return false
	}
	if a.Empty() {
		return true
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	// CountNonZero only accepts single-channel input
	flat := diff.Reshape(1, 0)
	defer flat.Close()
	return gocv.CountNonZero(flat) == 0
}
