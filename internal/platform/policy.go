// Package platform holds the per-platform clip duration policy. The table
// is configuration, not code: callers load it from TOML so platform rules
// can change without touching the timing logic.
package platform

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"clipcutter/internal/types"
)

// Verdict is the outcome of a duration-policy check. Violations are data
// for the selection step, never raised as errors and never auto-corrected:
// resizing a clip would break the "complete thought" boundary chosen
// upstream.
type Verdict int

const (
	OK Verdict = iota
	TooShort
	TooLong
	UnknownPlatform
)

func (v Verdict) String() string {
	switch v {
	case OK:
		return "ok"
	case TooShort:
		return "too_short"
	case TooLong:
		return "too_long"
	case UnknownPlatform:
		return "unknown_platform"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Range is the allowed clip duration window in seconds, inclusive.
type Range struct {
	MinSec float64 `toml:"min_sec"`
	MaxSec float64 `toml:"max_sec"`
}

// Policy maps each platform to its duration range.
type Policy map[types.Platform]Range

// Default returns the built-in policy used when no config file overrides it.
func Default() Policy {
	return Policy{
		types.PlatformTikTok:        {MinSec: 15, MaxSec: 60},
		types.PlatformYouTubeShorts: {MinSec: 15, MaxSec: 60},
		types.PlatformReels:         {MinSec: 15, MaxSec: 90},
		types.PlatformLinkedIn:      {MinSec: 30, MaxSec: 120},
	}
}

// Check verifies a clip duration against the platform's range.
func (p Policy) Check(platform types.Platform, durSec float64) Verdict {
	r, ok := p[platform]
	if !ok {
		return UnknownPlatform
	}
	switch {
	case durSec < r.MinSec:
		return TooShort
	case durSec > r.MaxSec:
		return TooLong
	default:
		return OK
	}
}

// Platforms lists the configured platform names, sorted for stable output.
func (p Policy) Platforms() []types.Platform {
	out := make([]types.Platform, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type policyFile struct {
	Platforms map[string]Range `toml:"platforms"`
}

// LoadTOML reads a policy table from a TOML file:
//
//	[platforms.tiktok]
//	min_sec = 21
//	max_sec = 34
//
// Platforms absent from the file fall back to the defaults.
func LoadTOML(path string) (Policy, error) {
	var f policyFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode policy %s: %w", path, err)
	}

	p := Default()
	for name, r := range f.Platforms {
		if r.MinSec < 0 || r.MaxSec <= 0 || r.MaxSec < r.MinSec {
			return nil, fmt.Errorf("policy %s: invalid range for %q: [%v, %v]", path, name, r.MinSec, r.MaxSec)
		}
		p[types.Platform(name)] = r
	}
	return p, nil
}
