package country

import (
	"fmt"
	"sort"
	"strings"
)

// Registry keeps a mapping from country codes to their profiles.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: map[string]Profile{}}
}

// Register adds or replaces a profile under its settings code.
func (r *Registry) Register(profile Profile) {
	if r.profiles == nil {
		r.profiles = map[string]Profile{}
	}
	r.profiles[profile.Settings().Code] = profile
}

// Resolve returns a profile by code or an error if it is absent.
func (r *Registry) Resolve(code string) (Profile, error) {
	if profile, ok := r.profiles[strings.ToLower(strings.TrimSpace(code))]; ok {
		return profile, nil
	}
	return nil, fmt.Errorf("country %s is not registered (available: %s)", code, strings.Join(r.Codes(), ", "))
}

// Codes lists registered country codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.profiles))
	for code := range r.profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Default registers every built-in country using the embedded settings, with
// overrides applied on top when non-nil.
func Default(overrides []byte) (*Registry, error) {
	settings, err := LoadSettings(defaultProfiles)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		extra, err := LoadSettings(overrides)
		if err != nil {
			return nil, err
		}
		for code, s := range extra {
			settings[code] = s
		}
	}

	builders := map[string]func(Settings) Profile{
		"canada":  func(s Settings) Profile { return Canada{settings: s} },
		"germany": func(s Settings) Profile { return Germany{settings: s} },
		"russia":  func(s Settings) Profile { return Russia{settings: s} },
		"saudi":   func(s Settings) Profile { return Saudi{settings: s} },
		"uae":     func(s Settings) Profile { return UAE{settings: s} },
	}

	reg := NewRegistry()
	for code, build := range builders {
		s, ok := settings[code]
		if !ok {
			return nil, fmt.Errorf("profile %s has no settings", code)
		}
		reg.Register(build(s))
	}
	return reg, nil
}
