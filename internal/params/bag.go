package params

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissing   = errors.New("parameter missing")
	ErrWrongType = errors.New("parameter has wrong type")
)

// Bag maps parameter names to the values the host passes on each render
type Bag map[string]interface{}

func (b Bag) lookup(key string) (interface{}, error) {
	val, ok := b[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrMissing)
	}
	return val, nil
}

func wrongType(key string, val interface{}, want string) error {
	return fmt.Errorf("%q is %T, want %s: %w", key, val, want, ErrWrongType)
}

// Float returns a numeric parameter; integer values are widened
func (b Bag) Float(key string) (float64, error) {
	val, err := b.lookup(key)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, wrongType(key, val, "number")
	}
}

// Int returns an integer parameter such as a popup index
func (b Bag) Int(key string) (int, error) {
	val, err := b.lookup(key)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	default:
		return 0, wrongType(key, val, "integer")
	}
}

func (b Bag) Bool(key string) (bool, error) {
	val, err := b.lookup(key)
	if err != nil {
		return false, err
	}
	v, ok := val.(bool)
	if !ok {
		return false, wrongType(key, val, "bool")
	}
	return v, nil
}

// Text returns a string parameter
func (b Bag) Text(key string) (string, error) {
	val, err := b.lookup(key)
	if err != nil {
		return "", err
	}
	v, ok := val.(string)
	if !ok {
		return "", wrongType(key, val, "string")
	}
	return v, nil
}

func (b Bag) Color(key string) (RGBA, error) {
	val, err := b.lookup(key)
	if err != nil {
		return RGBA{}, err
	}
	v, ok := val.(RGBA)
	if !ok {
		return RGBA{}, wrongType(key, val, "color")
	}
	return v, nil
}

func (b Bag) Point(key string) (XY, error) {
	val, err := b.lookup(key)
	if err != nil {
		return XY{}, err
	}
	v, ok := val.(XY)
	if !ok {
		return XY{}, wrongType(key, val, "point")
	}
	return v, nil
}

func (b Bag) Point3D(key string) (XYZ, error) {
	val, err := b.lookup(key)
	if err != nil {
		return XYZ{}, err
	}
	v, ok := val.(XYZ)
	if !ok {
		return XYZ{}, wrongType(key, val, "point3d")
	}
	return v, nil
}

// Clone returns a shallow copy of the bag
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Parse converts a "name=value" override into a typed bag entry using the
// declared descriptor. Colors are "r,g,b,a", points "x,y" or "x,y,z".
func Parse(descs []Descriptor, override string) (string, interface{}, error) {
	name, raw, ok := strings.Cut(override, "=")
	if !ok {
		return "", nil, fmt.Errorf("override %q: expected name=value", override)
	}
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)

	desc, found := Find(descs, name)
	if !found {
		return "", nil, fmt.Errorf("override %q: unknown parameter", name)
	}

	switch d := desc.(type) {
	case *SliderParam:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", nil, fmt.Errorf("slider %q: %w", name, err)
		}
		return name, d.Clamp(v), nil
	case *CheckboxParam:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return "", nil, fmt.Errorf("checkbox %q: %w", name, err)
		}
		return name, v, nil
	case *PopupParam:
		if idx, err := strconv.Atoi(raw); err == nil {
			if idx < 0 || idx >= len(d.Options) {
				return "", nil, fmt.Errorf("popup %q: index %d out of range", name, idx)
			}
			return name, idx, nil
		}
		for i, opt := range d.Options {
			if opt == raw {
				return name, i, nil
			}
		}
		return "", nil, fmt.Errorf("popup %q: unknown option %q", name, raw)
	case *ColorParam:
		vals, err := parseFloats(raw, 4)
		if err != nil {
			return "", nil, fmt.Errorf("color %q: %w", name, err)
		}
		return name, RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
	case *PointParam:
		vals, err := parseFloats(raw, 2)
		if err != nil {
			return "", nil, fmt.Errorf("point %q: %w", name, err)
		}
		return name, XY{X: vals[0], Y: vals[1]}, nil
	case *Point3DParam:
		vals, err := parseFloats(raw, 3)
		if err != nil {
			return "", nil, fmt.Errorf("point3d %q: %w", name, err)
		}
		return name, XYZ{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	default:
		return "", nil, fmt.Errorf("override %q: unsupported kind %s", name, desc.Kind())
	}
}

func parseFloats(raw string, n int) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
