package codec

import "sync"

// Registry manages the available encoders
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder // key can be either name or UID
}

var defaultRegistry = &Registry{
	encoders: make(map[string]Encoder),
}

// Register registers an encoder using both its name and UID
func Register(enc Encoder) {
	defaultRegistry.Register(enc)
}

// Get retrieves an encoder by name or UID
func Get(nameOrUID string) (Encoder, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns all registered encoders
func List() []Encoder {
	return defaultRegistry.List()
}

// Register registers an encoder using both its name and UID
func (r *Registry) Register(enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Register by both name and UID
	r.encoders[enc.Name()] = enc
	r.encoders[enc.UID()] = enc
}

// Get retrieves an encoder by name or UID
func (r *Registry) Get(nameOrUID string) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, ok := r.encoders[nameOrUID]
	if !ok {
		return nil, ErrEncoderNotFound
	}
	return enc, nil
}

// List returns all registered encoders (deduplicated)
func (r *Registry) List() []Encoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Encoder]bool)
	encoders := make([]Encoder, 0)

	for _, enc := range r.encoders {
		if !seen[enc] {
			seen[enc] = true
			encoders = append(encoders, enc)
		}
	}

	return encoders
}
