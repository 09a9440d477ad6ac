package params

import "fmt"

// SliderKey is the bag key of the skeleton's single slider
const SliderKey = "SliderParam"

// SkeletonParams is the statically typed view of the skeleton's bag.
// Code holding one of these cannot hit a missing key.
type SkeletonParams struct {
	Slider float64
}

// SkeletonDescriptors lists the controls the skeleton declares
func SkeletonDescriptors() []Descriptor {
	return []Descriptor{
		Slider(SliderKey, 0.0, 0.0, 100.0, 1),
	}
}

// DecodeSkeleton converts the host's bag into SkeletonParams
func DecodeSkeleton(bag Bag) (SkeletonParams, error) {
	slider, err := bag.Float(SliderKey)
	if err != nil {
		return SkeletonParams{}, fmt.Errorf("decode skeleton params: %w", err)
	}
	return SkeletonParams{Slider: slider}, nil
}

// Bag converts back to the untyped form the host understands
func (p SkeletonParams) Bag() Bag {
	return Bag{SliderKey: p.Slider}
}
