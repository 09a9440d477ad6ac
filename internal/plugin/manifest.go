package plugin

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"skeleton-effect/internal/params"
)

// ManifestFile is the name of the declaration written for the build tool
const ManifestFile = "plugin.toml"

// Manifest is the on-disk form of a Plugin
type Manifest struct {
	Name         string       `toml:"name"`
	SrcFolder    string       `toml:"src_folder,omitempty"`
	Entry        string       `toml:"entry,omitempty"`
	Effect       string       `toml:"effect"`
	Requirements string       `toml:"requirements,omitempty"`
	Parameters   []ParamEntry `toml:"parameter"`
}

// ParamEntry is one descriptor; only the fields of its kind are set
type ParamEntry struct {
	Name     string       `toml:"name"`
	Kind     params.Kind  `toml:"kind"`
	Value    float64      `toml:"value,omitempty"`
	Min      float64      `toml:"min,omitempty"`
	Max      float64      `toml:"max,omitempty"`
	Step     float64      `toml:"step,omitempty"`
	Checked  bool         `toml:"checked,omitempty"`
	Color    *params.RGBA `toml:"color,omitempty"`
	Point    *params.XY   `toml:"point,omitempty"`
	Point3D  *params.XYZ  `toml:"point3d,omitempty"`
	Options  []string     `toml:"options,omitempty"`
	Selected int          `toml:"selected,omitempty"`
}

// ToManifest converts p into its manifest form
func (p *Plugin) ToManifest() (Manifest, error) {
	m := Manifest{
		Name:         p.Name,
		SrcFolder:    p.SrcFolder,
		Entry:        p.Entry,
		Effect:       p.Effect,
		Requirements: p.Requirements,
		Parameters:   make([]ParamEntry, 0, len(p.Parameters)),
	}

	for _, desc := range p.Parameters {
		entry := ParamEntry{Name: desc.Name(), Kind: desc.Kind()}
		switch d := desc.(type) {
		case *params.SliderParam:
			entry.Value, entry.Min, entry.Max, entry.Step = d.Def, d.Min, d.Max, d.Step
		case *params.CheckboxParam:
			entry.Checked = d.Def
		case *params.ColorParam:
			c := d.Def
			entry.Color = &c
		case *params.PointParam:
			pt := d.Def
			entry.Point = &pt
		case *params.Point3DParam:
			pt := d.Def
			entry.Point3D = &pt
		case *params.PopupParam:
			entry.Options = append([]string(nil), d.Options...)
			entry.Selected = d.Def
		default:
			return Manifest{}, fmt.Errorf("parameter %q: unsupported descriptor %T", desc.Name(), desc)
		}
		m.Parameters = append(m.Parameters, entry)
	}

	return m, nil
}

// Descriptor rebuilds the typed descriptor from an entry
func (e ParamEntry) Descriptor() (params.Descriptor, error) {
	switch e.Kind {
	case params.KindSlider:
		return params.Slider(e.Name, e.Value, e.Min, e.Max, e.Step), nil
	case params.KindCheckbox:
		return params.Checkbox(e.Name, e.Checked), nil
	case params.KindColor:
		var c params.RGBA
		if e.Color != nil {
			c = *e.Color
		}
		return params.Color(e.Name, c), nil
	case params.KindPoint:
		var pt params.XY
		if e.Point != nil {
			pt = *e.Point
		}
		return params.Point(e.Name, pt), nil
	case params.KindPoint3D:
		var pt params.XYZ
		if e.Point3D != nil {
			pt = *e.Point3D
		}
		return params.Point3D(e.Name, pt), nil
	case params.KindPopup:
		return params.Popup(e.Name, e.Options, e.Selected), nil
	default:
		return nil, fmt.Errorf("parameter %q: unknown kind %q", e.Name, e.Kind)
	}
}

// ToPlugin converts a manifest back into a validated Plugin
func (m Manifest) ToPlugin() (*Plugin, error) {
	p := &Plugin{
		Name:         m.Name,
		SrcFolder:    m.SrcFolder,
		Entry:        m.Entry,
		Effect:       m.Effect,
		Requirements: m.Requirements,
		Parameters:   make([]params.Descriptor, 0, len(m.Parameters)),
	}
	for _, entry := range m.Parameters {
		desc, err := entry.Descriptor()
		if err != nil {
			return nil, err
		}
		p.Parameters = append(p.Parameters, desc)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteManifest encodes p as TOML at path
func WriteManifest(path string, p *Plugin) error {
	m, err := p.ToManifest()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return f.Close()
}

// LoadManifest reads a manifest written by WriteManifest
func LoadManifest(path string) (*Plugin, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("manifest %s: unknown keys %v", path, undecoded)
	}
	return m.ToPlugin()
}
