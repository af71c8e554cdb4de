// Package config loads named POCKET+ run profiles from a TOML file, so a
// ground-station operator can keep "housekeeping-720" or "venus-express"
// presets on disk instead of retyping packet size, robustness, and period
// flags on every invocation.
package config

import (
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Profile mirrors the codec's construction parameters: packet width in
// bytes, robustness, the three automatic-scheduling periods, and an
// optional initial mask (hex-encoded in the TOML file, since a raw byte
// string is awkward in that format).
type Profile struct {
	PacketBytes    int    `toml:"packet_bytes"`
	Robustness     int    `toml:"robustness"`
	PtLimit        int    `toml:"pt_limit"`
	FtLimit        int    `toml:"ft_limit"`
	RtLimit        int    `toml:"rt_limit"`
	InitialMaskHex string `toml:"initial_mask_hex"`
}

// InitialMask decodes InitialMaskHex, returning nil (meaning "zero mask")
// when the field is empty.
func (p Profile) InitialMask() ([]byte, error) {
	if p.InitialMaskHex == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(p.InitialMaskHex)
	if err != nil {
		return nil, fmt.Errorf("config: invalid initial_mask_hex: %w", err)
	}
	return b, nil
}

// fileFormat is the on-disk shape: a table of named profiles under
// [profiles.<name>].
type fileFormat struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// Registry holds every profile loaded from a single TOML file, keyed by
// name.
type Registry struct {
	profiles map[string]Profile
}

// Load parses path as a POCKET+ profile file. A missing or empty
// [profiles] table yields an empty, non-nil Registry rather than an
// error; a missing or unparsable file is an error.
func Load(path string) (*Registry, error) {
	var ff fileFormat
	if _, err := toml.DecodeFile(path, &ff); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if ff.Profiles == nil {
		ff.Profiles = map[string]Profile{}
	}
	return &Registry{profiles: ff.Profiles}, nil
}

// Get looks up a named profile. The error is a plain fmt.Errorf rather
// than a pocketplus.CodecError: profile lookup is a CLI/config-layer
// concern, not a codec wire-format failure, so it does not belong to the
// core package's error taxonomy.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("config: no such profile %q", name)
	}
	return p, nil
}

// Names returns every profile name in the registry, for CLI usage/help
// text.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names
}
