package codec

import (
	"fmt"
	"strings"

	apperrors "github.com/kbukum/fuel/errors"
	"github.com/kbukum/fuel/provider"
)

// Factory creates a provider from option values, e.g. loaded from config.
// A nil map returns the codec's default provider.
type Factory = provider.Factory[Provider]

// Registry maps codec names to providers. Lookup is exact: an unknown name
// is an error, never another codec.
type Registry struct {
	reg *provider.Registry[Provider]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{reg: provider.NewRegistry[Provider]()}
}

// RegisterFactory makes a codec available under name.
func (r *Registry) RegisterFactory(name string, f Factory) {
	r.reg.RegisterFactory(name, f)
}

// Register adds a configured provider under its own name, replacing any
// earlier instance.
func (r *Registry) Register(p Provider) {
	r.reg.Set(p.Name(), p)
}

// Lookup returns the provider registered under name, building the default
// instance from its factory on first use.
func (r *Registry) Lookup(name string) (Provider, error) {
	p, err := r.reg.Resolve(name)
	if err != nil {
		return nil, r.unknown(name, err)
	}
	return p, nil
}

// Create builds a new provider from the named factory and option values.
// The result is not cached.
func (r *Registry) Create(name string, opts map[string]any) (Provider, error) {
	p, err := r.reg.Create(name, opts)
	if err != nil {
		return nil, r.unknown(name, err)
	}
	return p, nil
}

// Names lists registered codec names.
func (r *Registry) Names() []string {
	return r.reg.List()
}

func (r *Registry) unknown(name string, err error) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	return apperrors.InvalidConfig(fmt.Sprintf("unknown codec %q (registered: %s)", name, strings.Join(r.Names(), ", "))).WithCause(err)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry. Codec packages add
// themselves when imported:
//
//	import _ "github.com/kbukum/fuel/codec/gojson"
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterFactory adds a codec to the default registry. Codec packages call
// it from init.
func RegisterFactory(name string, f Factory) {
	defaultRegistry.RegisterFactory(name, f)
}

// Lookup finds a codec in the default registry.
func Lookup(name string) (Provider, error) {
	return defaultRegistry.Lookup(name)
}
