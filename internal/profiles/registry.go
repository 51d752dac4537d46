package profiles

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var registryYAML []byte

// ErrUnknownProfile is wrapped by Registry.Get for ids not in the registry.
var ErrUnknownProfile = errors.New("unknown AI environment")

// Registry is the immutable profile and platform lookup table.
type Registry struct {
	profiles      map[string]Profile
	order         []string
	platforms     map[string]Platform
	platformOrder []string
}

type registryDoc struct {
	Profiles  []Profile  `yaml:"profiles"`
	Platforms []Platform `yaml:"platforms"`
}

// Load parses and validates the embedded registry document.
func Load() (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(registryYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse embedded profile registry: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, errors.New("embedded profile registry has no profiles")
	}
	if len(doc.Platforms) == 0 {
		return nil, errors.New("embedded profile registry has no platforms")
	}

	r := &Registry{
		profiles:  make(map[string]Profile, len(doc.Profiles)),
		platforms: make(map[string]Platform, len(doc.Platforms)),
	}

	for _, p := range doc.Profiles {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.ID, err)
		}
		if _, exists := r.profiles[p.ID]; exists {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	// Resolve aliases after all profiles are registered so declaration
	// order in the document does not matter.
	for _, id := range r.order {
		p := r.profiles[id]
		if p.Alias == "" {
			continue
		}
		target, ok := r.profiles[p.Alias]
		if !ok {
			return nil, fmt.Errorf("profile %q: alias target %q not found", id, p.Alias)
		}
		if target.Alias != "" {
			return nil, fmt.Errorf("profile %q: alias target %q is itself an alias", id, p.Alias)
		}
		p.Folder = target.Folder
		p.Format = target.Format
		p.ArgToken = target.ArgToken
		p.Extras = target.Extras
		r.profiles[id] = p
	}

	for _, pl := range doc.Platforms {
		if pl.ID == "" || pl.ScriptKey == "" || pl.ScriptsDir == "" {
			return nil, fmt.Errorf("platform %q: incomplete definition", pl.ID)
		}
		if _, exists := r.platforms[pl.ID]; exists {
			return nil, fmt.Errorf("duplicate platform id %q", pl.ID)
		}
		r.platforms[pl.ID] = pl
		r.platformOrder = append(r.platformOrder, pl.ID)
	}

	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry, loading it on first use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load()
	})
	return defaultReg, defaultErr
}

// Get returns the profile for id.
func (r *Registry) Get(id string) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownProfile, id, strings.Join(r.IDs(), ", "))
	}
	return p, nil
}

// Has reports whether id is a registered profile.
func (r *Registry) Has(id string) bool {
	_, ok := r.profiles[id]
	return ok
}

// IDs returns the profile ids in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Profiles returns all profiles in declaration order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// PlatformByID returns the platform for id.
func (r *Registry) PlatformByID(id string) (Platform, bool) {
	pl, ok := r.platforms[id]
	return pl, ok
}

// Platforms returns all platforms in declaration order.
func (r *Registry) Platforms() []Platform {
	out := make([]Platform, 0, len(r.platformOrder))
	for _, id := range r.platformOrder {
		out = append(out, r.platforms[id])
	}
	return out
}

// ScriptKey returns the scripts-map key used when building for a platform
// id. Unregistered platforms select the ps key; only linux selects sh.
func (r *Registry) ScriptKey(platformID string) string {
	if pl, ok := r.platforms[platformID]; ok {
		return pl.ScriptKey
	}
	if platformID == "linux" {
		return "sh"
	}
	return "ps"
}
