// Parameter descriptors declared at plugin build time
package params

import (
	"fmt"
	"math"
)

// Kind identifies the UI control a descriptor maps to
type Kind string

const (
	KindSlider   Kind = "slider"
	KindCheckbox Kind = "checkbox"
	KindColor    Kind = "color"
	KindPoint    Kind = "point"
	KindPoint3D  Kind = "point3d"
	KindPopup    Kind = "popup"
)

// Descriptor describes one named, typed UI parameter
type Descriptor interface {
	Name() string
	Kind() Kind
	Default() interface{}
	Validate() error
}

// RGBA is a color value with components in 0..1
type RGBA struct {
	R float64 `toml:"r"`
	G float64 `toml:"g"`
	B float64 `toml:"b"`
	A float64 `toml:"a"`
}

// XY is a 2-D point in layer coordinates
type XY struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// XYZ is a 3-D point in composition coordinates
type XYZ struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// SliderParam is a bounded numeric slider
type SliderParam struct {
	ParamName string
	Def       float64
	Min       float64
	Max       float64
	Step      float64
}

// Slider mirrors Slider(name, default, min, max, step) from the build script
func Slider(name string, def, min, max, step float64) *SliderParam {
	return &SliderParam{ParamName: name, Def: def, Min: min, Max: max, Step: step}
}

func (s *SliderParam) Name() string         { return s.ParamName }
func (s *SliderParam) Kind() Kind           { return KindSlider }
func (s *SliderParam) Default() interface{} { return s.Def }

func (s *SliderParam) Validate() error {
	if err := validateName(s.ParamName); err != nil {
		return err
	}
	for _, v := range []float64{s.Def, s.Min, s.Max, s.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("slider %q: values must be finite", s.ParamName)
		}
	}
	if s.Min > s.Max {
		return fmt.Errorf("slider %q: min %g greater than max %g", s.ParamName, s.Min, s.Max)
	}
	if s.Def < s.Min || s.Def > s.Max {
		return fmt.Errorf("slider %q: default %g outside [%g, %g]", s.ParamName, s.Def, s.Min, s.Max)
	}
	if s.Step <= 0 {
		return fmt.Errorf("slider %q: step must be positive", s.ParamName)
	}
	return nil
}

// Clamp limits v to the slider range
func (s *SliderParam) Clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// CheckboxParam is a boolean toggle
type CheckboxParam struct {
	ParamName string
	Def       bool
}

func Checkbox(name string, def bool) *CheckboxParam {
	return &CheckboxParam{ParamName: name, Def: def}
}

func (c *CheckboxParam) Name() string         { return c.ParamName }
func (c *CheckboxParam) Kind() Kind           { return KindCheckbox }
func (c *CheckboxParam) Default() interface{} { return c.Def }
func (c *CheckboxParam) Validate() error      { return validateName(c.ParamName) }

// ColorParam is an RGBA color picker
type ColorParam struct {
	ParamName string
	Def       RGBA
}

func Color(name string, def RGBA) *ColorParam {
	return &ColorParam{ParamName: name, Def: def}
}

func (c *ColorParam) Name() string         { return c.ParamName }
func (c *ColorParam) Kind() Kind           { return KindColor }
func (c *ColorParam) Default() interface{} { return c.Def }

func (c *ColorParam) Validate() error {
	if err := validateName(c.ParamName); err != nil {
		return err
	}
	for _, v := range []float64{c.Def.R, c.Def.G, c.Def.B, c.Def.A} {
		if v < 0 || v > 1 {
			return fmt.Errorf("color %q: components must be in [0, 1]", c.ParamName)
		}
	}
	return nil
}

// PointParam is a 2-D point control
type PointParam struct {
	ParamName string
	Def       XY
}

func Point(name string, def XY) *PointParam {
	return &PointParam{ParamName: name, Def: def}
}

func (p *PointParam) Name() string         { return p.ParamName }
func (p *PointParam) Kind() Kind           { return KindPoint }
func (p *PointParam) Default() interface{} { return p.Def }
func (p *PointParam) Validate() error      { return validateName(p.ParamName) }

// Point3DParam is a 3-D point control
type Point3DParam struct {
	ParamName string
	Def       XYZ
}

func Point3D(name string, def XYZ) *Point3DParam {
	return &Point3DParam{ParamName: name, Def: def}
}

func (p *Point3DParam) Name() string         { return p.ParamName }
func (p *Point3DParam) Kind() Kind           { return KindPoint3D }
func (p *Point3DParam) Default() interface{} { return p.Def }
func (p *Point3DParam) Validate() error      { return validateName(p.ParamName) }

// PopupParam is an enumerated choice; the bag carries the selected index
type PopupParam struct {
	ParamName string
	Options   []string
	Def       int
}

func Popup(name string, options []string, def int) *PopupParam {
	return &PopupParam{ParamName: name, Options: options, Def: def}
}

func (p *PopupParam) Name() string         { return p.ParamName }
func (p *PopupParam) Kind() Kind           { return KindPopup }
func (p *PopupParam) Default() interface{} { return p.Def }

func (p *PopupParam) Validate() error {
	if err := validateName(p.ParamName); err != nil {
		return err
	}
	if len(p.Options) == 0 {
		return fmt.Errorf("popup %q: no options", p.ParamName)
	}
	if p.Def < 0 || p.Def >= len(p.Options) {
		return fmt.Errorf("popup %q: default index %d out of range", p.ParamName, p.Def)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("parameter name is empty")
	}
	return nil
}

// Defaults builds the bag a host sends when no control has been touched
func Defaults(descs []Descriptor) Bag {
	bag := make(Bag, len(descs))
	for _, d := range descs {
		bag[d.Name()] = d.Default()
	}
	return bag
}

// Find returns the descriptor with the given name
func Find(descs []Descriptor, name string) (Descriptor, bool) {
	for _, d := range descs {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
