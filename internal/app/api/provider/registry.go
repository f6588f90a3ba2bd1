package provider

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"v2t/internal/app/api"
	apperrors "v2t/internal/app/errors"
)

// Loader loads the model of one family. It blocks until the model is ready.
type Loader func(ctx context.Context, settings Settings, logger *zap.Logger) (api.Model, error)

// Registry binds families to loaders.
type Registry struct {
	mu      sync.RWMutex
	loaders map[Family]Loader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[Family]Loader)}
}

// Register binds loader to family. Families outside the enumeration and second
// loaders for the same family are rejected.
func (r *Registry) Register(family Family, loader Loader) error {
	if !family.Valid() {
		return apperrors.UnsupportedModel(family.String())
	}
	if loader == nil {
		return apperrors.RequiredField("loader")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[family]; exists {
		return apperrors.AlreadyExists("loader", family.String())
	}
	r.loaders[family] = loader
	return nil
}

// Load resolves identifier and runs the bound loader. Unknown identifiers fail with
// ErrUnsupportedModel, families without a loader with ErrModelUnavailable.
func (r *Registry) Load(ctx context.Context, identifier string, settings Settings, logger *zap.Logger) (Family, api.Model, error) {
	family, err := ParseFamily(identifier)
	if err != nil {
		return "", nil, err
	}

	r.mu.RLock()
	loader, ok := r.loaders[family]
	r.mu.RUnlock()
	if !ok {
		return family, nil, apperrors.ModelUnavailable(family.String(), apperrors.New("no loader linked into this binary"))
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := loader(ctx, settings.WithDefaults(), logger.With(zap.String("family", family.String())))
	if err != nil {
		return family, nil, err
	}
	if m == nil {
		return family, nil, apperrors.ModelUnavailable(family.String(), apperrors.New("loader returned no model"))
	}
	return family, m, nil
}

// Registered returns the families that have a loader, in listing order.
func (r *Registry) Registered() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Family
	for _, f := range families {
		if _, ok := r.loaders[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry the family packages register into.
func Default() *Registry {
	return defaultRegistry
}

// RegisterLoader binds loader to family in the default registry and panics on
// failure. Family packages call it from init.
func RegisterLoader(family Family, loader Loader) {
	if err := defaultRegistry.Register(family, loader); err != nil {
		panic(err)
	}
}
