// Package registry holds the static physician registry: each physician's
// peer group (subspecialty) and tier. A Registry is built once at startup
// and never mutated.
package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/revshare/internal/model"
)

// Registry is an immutable physician-name → profile mapping.
type Registry struct {
	profiles map[string]model.PhysicianProfile
}

// New builds a Registry from profiles. Names are trimmed; duplicate names
// and unknown tiers are rejected.
func New(profiles []model.PhysicianProfile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]model.PhysicianProfile, len(profiles))}
	for _, p := range profiles {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("registry entry with empty name")
		}
		if _, dup := r.profiles[name]; dup {
			return nil, fmt.Errorf("duplicate registry entry %q", name)
		}
		tier, ok := model.ParseTier(strings.ToUpper(strings.TrimSpace(string(p.Tier))))
		if !ok {
			return nil, fmt.Errorf("unknown tier %q for %q", p.Tier, name)
		}
		group := strings.TrimSpace(p.PeerGroup)
		if group == "" {
			group = model.UnspecifiedPeerGroup
		}
		r.profiles[name] = model.PhysicianProfile{Name: name, PeerGroup: group, Tier: tier}
	}
	return r, nil
}

// yamlRegistry is the on-disk YAML structure.
type yamlRegistry struct {
	Physicians []model.PhysicianProfile `yaml:"physicians"`
}

// Load reads a YAML registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML registry document.
func Parse(data []byte) (*Registry, error) {
	var yr yamlRegistry
	if err := yaml.Unmarshal(data, &yr); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return New(yr.Physicians)
}

// Lookup returns the profile for an exact trimmed name.
func (r *Registry) Lookup(name string) (model.PhysicianProfile, bool) {
	if r == nil {
		return model.PhysicianProfile{}, false
	}
	p, ok := r.profiles[strings.TrimSpace(name)]
	return p, ok
}

// Profile returns the registered profile or the sentinel profile.
func (r *Registry) Profile(name string) model.PhysicianProfile {
	if p, ok := r.Lookup(name); ok {
		return p
	}
	return model.UnknownProfile(strings.TrimSpace(name))
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered physicians.
func (r *Registry) Len() int {
	return len(r.profiles)
}
