package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-md2docx/internal/assets"
)

// Registry indexes templates by display name, slug and alias.
// It is read-only once built and safe for concurrent use.
type Registry struct {
	templates []*Template
	index     map[string]*Template
}

// NewRegistry indexes templates. Two templates answering to the same name
// are rejected.
func NewRegistry(templates ...*Template) (*Registry, error) {
	r := &Registry{
		templates: make([]*Template, 0, len(templates)),
		index:     make(map[string]*Template, len(templates)*4),
	}
	for _, t := range templates {
		for _, name := range t.Names() {
			key := normalizeName(name)
			if key == "" {
				continue
			}
			if prev, ok := r.index[key]; ok && prev != t {
				return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateProfile, name, prev.Slug, t.Slug)
			}
			r.index[key] = t
		}
		r.templates = append(r.templates, t)
	}
	sort.Slice(r.templates, func(i, j int) bool { return r.templates[i].Slug < r.templates[j].Slug })
	return r, nil
}

// LoadRegistry reads and validates every profile the loader lists.
// Any failure makes the whole registry unavailable.
func LoadRegistry(loader assets.AssetLoader) (*Registry, error) {
	slugs, err := loader.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("%w: listing profiles: %v", ErrRegistryLoad, err)
	}

	templates := make([]*Template, 0, len(slugs))
	for _, slug := range slugs {
		data, err := loader.LoadProfile(slug)
		if err != nil {
			return nil, fmt.Errorf("%w: loading %q: %w", ErrRegistryLoad, slug, err)
		}
		t, err := ParseTemplate(slug, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistryLoad, err)
		}
		templates = append(templates, t)
	}

	r, err := NewRegistry(templates...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryLoad, err)
	}
	return r, nil
}

// Lookup finds a template by display name, slug or alias, ignoring case
// and surrounding spaces.
func (r *Registry) Lookup(name string) (*Template, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.index[normalizeName(name)]
	return t, ok
}

// Templates returns the templates sorted by slug.
func (r *Registry) Templates() []*Template {
	if r == nil {
		return nil
	}
	out := make([]*Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Len returns the number of templates.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.templates)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
