package effect

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"skeleton-effect/internal/params"
)

// KernelSize is the fixed Gaussian window, matching the template's 5x5 call
const KernelSize = 5

// GaussianBlur blurs the frame with sigma taken from SliderParam
type GaussianBlur struct{}

// NewGaussianBlur creates the skeleton's blur effect
func NewGaussianBlur() *GaussianBlur {
	return &GaussianBlur{}
}

func (g *GaussianBlur) Name() string {
	return "Gaussian Blur"
}

func (g *GaussianBlur) Description() string {
	return "5x5 Gaussian blur; the slider sets sigma"
}

func (g *GaussianBlur) Parameters() []params.Descriptor {
	return params.SkeletonDescriptors()
}

func (g *GaussianBlur) Apply(input gocv.Mat, bag params.Bag) (gocv.Mat, error) {
	p, err := params.DecodeSkeleton(bag)
	if err != nil {
		return gocv.NewMat(), err
	}
	return g.ApplyTyped(input, p)
}

// ApplyTyped is Apply without the bag lookup
func (g *GaussianBlur) ApplyTyped(input gocv.Mat, p params.SkeletonParams) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	sigma := p.Slider
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return gocv.NewMat(), fmt.Errorf("invalid sigma: %v", sigma)
	}

	// OpenCV derives sigma from the kernel when it is 0; a zero slider means no blur
	if sigma == 0 {
		return input.Clone(), nil
	}

	output := gocv.NewMat()
	gocv.GaussianBlur(input, &output, image.Pt(KernelSize, KernelSize), sigma, sigma, gocv.BorderDefault)

	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("gaussian blur produced an empty image")
	}
	return output, nil
}

// Passthrough returns an unmodified copy of the frame
type Passthrough struct{}

func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

func (p *Passthrough) Name() string                    { return "Passthrough" }
func (p *Passthrough) Description() string             { return "Returns the input unchanged" }
func (p *Passthrough) Parameters() []params.Descriptor { return nil }

func (p *Passthrough) Apply(input gocv.Mat, _ params.Bag) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}
	return input.Clone(), nil
}
