// Effect system: the image transform a plugin applies per frame
package effect

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"

	"skeleton-effect/internal/params"
)

// Effect is a deterministic, side-effect-free image transform.
// Apply must not modify input and must return a new Mat owned by the caller.
type Effect interface {
	Name() string
	Description() string
	Parameters() []params.Descriptor
	Apply(input gocv.Mat, bag params.Bag) (gocv.Mat, error)
}

var effects = make(map[string]Effect)

// Register makes an effect available by name. Call from init only.
func Register(name string, e Effect) {
	effects[name] = e
}

func Get(name string) (Effect, bool) {
	e, exists := effects[name]
	return e, exists
}

// MustGet panics when name is not registered
func MustGet(name string) Effect {
	e, exists := effects[name]
	if !exists {
		panic(fmt.Sprintf("effect not registered: %s", name))
	}
	return e
}

// Names returns registered effect names in sorted order
func Names() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	GaussianBlurName = "gaussian_blur"
	PassthroughName  = "passthrough"
)

func init() {
	Register(GaussianBlurName, NewGaussianBlur())
	Register(PassthroughName, NewPassthrough())
}
