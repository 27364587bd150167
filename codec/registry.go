package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

var defaultRegistry = NewRegistry()

// Register registers a codec with the default registry under its name
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name from the default registry
func Get(name string) (Codec, error) {
	return defaultRegistry.Get(name)
}

// List returns all codecs of the default registry
func List() []Codec {
	return defaultRegistry.List()
}

// Register registers a codec under its name, replacing any previous one
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.Name()] = codec
}

// Get retrieves a codec by name
func (r *Registry) Get(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCodecNotFound, name)
	}
	return codec, nil
}

// List returns all registered codecs ordered by name
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, 0, len(r.codecs))
	for _, codec := range r.codecs {
		codecs = append(codecs, codec)
	}
	sort.Slice(codecs, func(i, j int) bool { return codecs[i].Name() < codecs[j].Name() })

	return codecs
}
