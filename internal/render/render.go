// Render callback invoked by the host once per frame or tile
package render

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"skeleton-effect/internal/effect"
	"skeleton-effect/internal/params"
	"skeleton-effect/internal/raster"
)

// Stage names the step of a render that failed
type Stage string

const (
	StageValidate  Stage = "validate"
	StageParams    Stage = "params"
	StageTransform Stage = "transform"
	StageShape     Stage = "shape"
)

// RenderFailure is any error raised while extracting parameters or
// applying the transform. It is logged, never returned to the host.
type RenderFailure struct {
	Stage Stage
	Err   error
}

func (f *RenderFailure) Error() string {
	return fmt.Sprintf("render failed at %s: %v", f.Stage, f.Err)
}

func (f *RenderFailure) Unwrap() error {
	return f.Err
}

// TypedEffect is implemented by effects that accept the skeleton's typed params
type TypedEffect interface {
	ApplyTyped(input gocv.Mat, p params.SkeletonParams) (gocv.Mat, error)
}

// Renderer wraps an effect with the never-break-the-pipeline policy.
// It holds no mutable state and may be shared between goroutines.
type Renderer struct {
	effect effect.Effect
	logger *logrus.Logger
}

func NewRenderer(e effect.Effect, logger *logrus.Logger) *Renderer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Renderer{
		effect: e,
		logger: logger,
	}
}

// Render applies the effect to input. On any failure the error is logged
// and a copy of input is returned; the host always receives a buffer of the
// same shape. The caller owns the returned Mat.
func (r *Renderer) Render(input gocv.Mat, bag params.Bag) gocv.Mat {
	output, err := r.TryRender(input, bag)
	if err != nil {
		r.logFailure(input, err)
		return raster.Clone(input)
	}
	return output
}

// RenderTyped is Render for callers that hold SkeletonParams
func (r *Renderer) RenderTyped(input gocv.Mat, p params.SkeletonParams) gocv.Mat {
	output, err := r.tryRenderTyped(input, p)
	if err != nil {
		r.logFailure(input, err)
		return raster.Clone(input)
	}
	return output
}

// TryRender runs the effect and reports the failure instead of masking it
func (r *Renderer) TryRender(input gocv.Mat, bag params.Bag) (gocv.Mat, error) {
	return r.guard(input, func() (gocv.Mat, error) {
		if err := r.checkParams(bag); err != nil {
			return gocv.NewMat(), &RenderFailure{Stage: StageParams, Err: err}
		}
		return r.effect.Apply(input, bag)
	})
}

func (r *Renderer) tryRenderTyped(input gocv.Mat, p params.SkeletonParams) (gocv.Mat, error) {
	typed, ok := r.effect.(TypedEffect)
	if !ok {
		return r.TryRender(input, p.Bag())
	}
	return r.guard(input, func() (gocv.Mat, error) {
		return typed.ApplyTyped(input, p)
	})
}

// guard validates input, recovers panics raised by the effect and checks
// that the output preserves the input's shape.
func (r *Renderer) guard(input gocv.Mat, apply func() (gocv.Mat, error)) (output gocv.Mat, err error) {
	if verr := raster.Validate(input); verr != nil {
		return gocv.NewMat(), &RenderFailure{Stage: StageValidate, Err: verr}
	}

	defer func() {
		if rec := recover(); rec != nil {
			output = gocv.NewMat()
			err = &RenderFailure{Stage: StageTransform, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	output, err = apply()
	if err != nil {
		output.Close()
		var failure *RenderFailure
		if errors.As(err, &failure) {
			return gocv.NewMat(), err
		}
		stage := StageTransform
		if errors.Is(err, params.ErrMissing) || errors.Is(err, params.ErrWrongType) {
			stage = StageParams
		}
		return gocv.NewMat(), &RenderFailure{Stage: stage, Err: err}
	}

	if !raster.SameShape(input, output) {
		got := raster.ShapeOf(output)
		output.Close()
		return gocv.NewMat(), &RenderFailure{
			Stage: StageShape,
			Err:   fmt.Errorf("output %s (type %v) does not match input %s (type %v)", got, got.Type, raster.ShapeOf(input), input.Type()),
		}
	}

	return output, nil
}

// checkParams verifies every declared parameter is present in the bag
func (r *Renderer) checkParams(bag params.Bag) error {
	for _, desc := range r.effect.Parameters() {
		if _, ok := bag[desc.Name()]; !ok {
			return fmt.Errorf("%q: %w", desc.Name(), params.ErrMissing)
		}
	}
	return nil
}

func (r *Renderer) logFailure(input gocv.Mat, err error) {
	fields := logrus.Fields{
		"effect": r.effect.Name(),
		"shape":  raster.ShapeOf(input).String(),
	}
	var failure *RenderFailure
	if errors.As(err, &failure) {
		fields["stage"] = failure.Stage
	}
	r.logger.WithFields(fields).WithError(err).Error("Render failed, returning input unchanged")
}

var defaultRenderer = NewRenderer(effect.MustGet(effect.GaussianBlurName), nil)

// Render is the skeleton's callback: Gaussian blur driven by SliderParam,
// logging to the standard logrus logger.
func Render(input gocv.Mat, bag params.Bag) gocv.Mat {
	return defaultRenderer.Render(input, bag)
}
