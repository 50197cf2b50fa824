package platform

import (
	"sync"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// a platform with an ID that is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformID is returned when attempting to register
	// a platform with an empty ID.
	ErrInvalidPlatformID = errors.New("invalid platform id")
)

// Registry holds platforms in registration order.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	platforms []Platform
	byID      map[string]Platform
}

// NewRegistry creates a new empty platform registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Platform),
	}
}

// Register appends a platform to the registry.
// Returns an error if:
//   - The platform or its ID is empty
//   - A platform with the same ID is already registered
func (r *Registry) Register(p Platform) error {
	if p == nil || p.Descriptor().ID == "" {
		return ErrInvalidPlatformID
	}
	id := p.Descriptor().ID

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", id)
	}

	r.platforms = append(r.platforms, p)
	r.byID[id] = p
	return nil
}

// Get returns the platform with the given ID, or nil if it is not registered.
func (r *Registry) Get(id string) Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[id]
}

// All returns all registered platforms in registration order.
// Returns nil if the registry is empty.
func (r *Registry) All() []Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.platforms) == 0 {
		return nil
	}
	out := make([]Platform, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// IDs returns the registered platform IDs in registration order.
// Returns nil if the registry is empty.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.platforms) == 0 {
		return nil
	}
	ids := make([]string, len(r.platforms))
	for i, p := range r.platforms {
		ids[i] = p.Descriptor().ID
	}
	return ids
}

// Select returns the platforms named by ids, in registration order and
// without duplicates. An unknown ID returns errors.ErrUnknownPlatform.
func (r *Registry) Select(ids []string) ([]Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			return nil, errors.Wrapf(errors.ErrUnknownPlatform, "%q", id)
		}
		want[id] = true
	}

	out := make([]Platform, 0, len(want))
	for _, p := range r.platforms {
		if want[p.Descriptor().ID] {
			out = append(out, p)
		}
	}
	return out, nil
}
