// Plugin declaration handed to the external build tool
package plugin

import (
	"fmt"
	"os"
	"path/filepath"

	"skeleton-effect/internal/effect"
	"skeleton-effect/internal/params"
)

// RequirementsFile lists extra dependencies the packager bundles with the plugin
const RequirementsFile = "requirements.txt"

// entryNames are the render entry files looked for in a source folder, in order.
// The effect's registry name with the same extensions is tried last.
var entryNames = []string{"render.py", "render.go"}

// Plugin describes one effect plugin: its name, where its sources live,
// which registered effect renders it and the UI parameters it exposes
type Plugin struct {
	Name         string
	SrcFolder    string
	Entry        string
	Effect       string
	Requirements string
	Parameters   []params.Descriptor
}

func New(name string) *Plugin {
	return &Plugin{
		Name:       name,
		Effect:     effect.GaussianBlurName,
		Parameters: make([]params.Descriptor, 0),
	}
}

// SetSrcFolder records the plugin's source folder, locates its render
// entry file and picks up a requirements file when one is present
func (p *Plugin) SetSrcFolder(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve source folder: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("source folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source folder %s is not a directory", abs)
	}

	entry, err := findEntry(abs, p.Effect)
	if err != nil {
		return err
	}

	p.SrcFolder = abs
	p.Entry = entry
	p.Requirements = ""
	req := filepath.Join(abs, RequirementsFile)
	if _, err := os.Stat(req); err == nil {
		p.Requirements = req
	}
	return nil
}

func findEntry(dir, effectName string) (string, error) {
	candidates := append([]string(nil), entryNames...)
	if effectName != "" {
		candidates = append(candidates, effectName+".py", effectName+".go")
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("source folder %s: no render entry (tried %v)", dir, candidates)
}

// AddParameter appends a UI parameter; names must be unique
func (p *Plugin) AddParameter(desc params.Descriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if _, exists := params.Find(p.Parameters, desc.Name()); exists {
		return fmt.Errorf("duplicate parameter %q", desc.Name())
	}
	p.Parameters = append(p.Parameters, desc)
	return nil
}

// MustAddParameter is AddParameter for static declarations; it panics on error
func (p *Plugin) MustAddParameter(desc params.Descriptor) *Plugin {
	if err := p.AddParameter(desc); err != nil {
		panic(fmt.Sprintf("plugin %s: %v", p.Name, err))
	}
	return p
}

// Validate checks the declaration is complete and that the chosen effect
// can find every parameter it reads
func (p *Plugin) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plugin name is empty")
	}

	e, ok := effect.Get(p.Effect)
	if !ok {
		return fmt.Errorf("plugin %s: unknown effect %q", p.Name, p.Effect)
	}

	seen := make(map[string]bool, len(p.Parameters))
	for _, desc := range p.Parameters {
		if err := desc.Validate(); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name, err)
		}
		if seen[desc.Name()] {
			return fmt.Errorf("plugin %s: duplicate parameter %q", p.Name, desc.Name())
		}
		seen[desc.Name()] = true
	}

	for _, want := range e.Parameters() {
		declared, ok := params.Find(p.Parameters, want.Name())
		if !ok {
			return fmt.Errorf("plugin %s: effect %q reads %q which is not declared", p.Name, p.Effect, want.Name())
		}
		if declared.Kind() != want.Kind() {
			return fmt.Errorf("plugin %s: parameter %q is a %s, effect expects a %s", p.Name, want.Name(), declared.Kind(), want.Kind())
		}
	}

	return nil
}

// Defaults returns the bag a host sends before the user touches any control
func (p *Plugin) Defaults() params.Bag {
	return params.Defaults(p.Parameters)
}

// Skeleton declares the template plugin: one slider driving a Gaussian blur
func Skeleton() *Plugin {
	p := New("Skeleton")
	for _, desc := range params.SkeletonDescriptors() {
		p.MustAddParameter(desc)
	}
	return p
}
