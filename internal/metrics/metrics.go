// Quality metrics comparing a frame before and after the effect
package metrics

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"

	"skeleton-effect/internal/raster"
)

// Report summarises what a render did to a frame
type Report struct {
	MSE          float64
	PSNR         float64
	EnergyBefore float64
	EnergyAfter  float64
}

// Evaluate computes every metric for original and processed
func Evaluate(original, processed gocv.Mat) (Report, error) {
	mse, err := MSE(original, processed)
	if err != nil {
		return Report{}, err
	}
	return Report{
		MSE:          mse,
		PSNR:         psnrFromMSE(mse, peak(original)),
		EnergyBefore: Energy(original),
		EnergyAfter:  Energy(processed),
	}, nil
}

// MSE is the mean squared error over all samples of all channels
func MSE(original, processed gocv.Mat) (float64, error) {
	if original.Empty() || processed.Empty() {
		return 0, fmt.Errorf("empty images")
	}
	if !raster.SameShape(original, processed) {
		return 0, fmt.Errorf("image shapes mismatch: %s vs %s", raster.ShapeOf(original), raster.ShapeOf(processed))
	}

	a := toFloat(original)
	defer a.Close()
	b := toFloat(processed)
	defer b.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.Subtract(a, b, &diff)

	l2 := gocv.Norm(diff, gocv.NormL2)
	samples := float64(original.Rows() * original.Cols() * original.Channels())
	return l2 * l2 / samples, nil
}

// PSNR is +Inf for identical frames
func PSNR(original, processed gocv.Mat) (float64, error) {
	mse, err := MSE(original, processed)
	if err != nil {
		return 0, err
	}
	return psnrFromMSE(mse, peak(original)), nil
}

// Energy is the sum of all samples across channels
func Energy(mat gocv.Mat) float64 {
	if mat.Empty() {
		return 0
	}
	s := mat.Sum()
	return s.Val1 + s.Val2 + s.Val3 + s.Val4
}

func psnrFromMSE(mse, maxVal float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(maxVal/math.Sqrt(mse))
}

// depthMask selects the depth bits of an OpenCV type, dropping the channel count
const depthMask = 7

// peak is the nominal maximum sample value for the buffer's depth
func peak(mat gocv.Mat) float64 {
	switch mat.Type() & depthMask {
	case gocv.MatTypeCV8U:
		return math.MaxUint8
	case gocv.MatTypeCV8S:
		return math.MaxInt8
	case gocv.MatTypeCV16U:
		return math.MaxUint16
	case gocv.MatTypeCV16S:
		return math.MaxInt16
	case gocv.MatTypeCV32S:
		return math.MaxInt32
	default:
		// floating point samples are normalised to 0..1
		return 1
	}
}

func toFloat(mat gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	mat.ConvertTo(&out, gocv.MatTypeCV64F)
	return out
}
