package domain

import (
	"fmt"
	"strings"
)

// NeitherMode decides what happens to an identity that has both parse
// kinds when neither kind is preferred.
type NeitherMode string

const (
	// NeitherExclude drops the identity entirely. This is the default.
	NeitherExclude NeitherMode = "exclude"

	// NeitherIncludeAll emits the kind-A fragments and the kind-B file.
	NeitherIncludeAll NeitherMode = "include_all"
)

// IsValid returns true if the mode is recognised.
func (m NeitherMode) IsValid() bool {
	switch m {
	case NeitherExclude, NeitherIncludeAll:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m NeitherMode) String() string {
	return string(m)
}

// ResolutionPolicy selects the canonical parse kind for identities that
// have both kinds. It is evaluated per identity, not per row.
type ResolutionPolicy struct {
	PreferKindA bool
	PreferKindB bool

	// OnNeither applies when both preferences are false.
	// The zero value behaves as NeitherExclude.
	OnNeither NeitherMode
}

// DefaultPolicy prefers kind-A parses.
func DefaultPolicy() ResolutionPolicy {
	return ResolutionPolicy{PreferKindA: true, OnNeither: NeitherExclude}
}

// Neither returns the effective NeitherMode.
func (p ResolutionPolicy) Neither() NeitherMode {
	if p.OnNeither == "" {
		return NeitherExclude
	}
	return p.OnNeither
}

// Validate checks that the policy is well-formed.
func (p ResolutionPolicy) Validate() error {
	if !p.Neither().IsValid() {
		return fmt.Errorf("%w: unknown on-neither mode %q", ErrPolicy, p.OnNeither)
	}
	return nil
}

// Preference returns the textual form accepted by ParsePreference.
// A policy preferring both kinds reports "a", since kind A wins.
func (p ResolutionPolicy) Preference() string {
	switch {
	case p.PreferKindA:
		return PreferenceKindA
	case p.PreferKindB:
		return PreferenceKindB
	default:
		return PreferenceNone
	}
}

// Textual preference values used by configuration and flags.
const (
	PreferenceKindA = "a"
	PreferenceKindB = "b"
	PreferenceNone  = "none"
)

// ParsePreference maps a textual preference to a policy.
// Asking for both kinds at once is undefined and returns ErrPolicy.
func ParsePreference(value string, onNeither NeitherMode) (ResolutionPolicy, error) {
	p := ResolutionPolicy{OnNeither: onNeither}

	parts := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return r == ',' || r == '+' || r == ' '
	})
	for _, part := range parts {
		switch part {
		case PreferenceKindA, "pdf":
			p.PreferKindA = true
		case PreferenceKindB, "pmc":
			p.PreferKindB = true
		case "both", "all":
			return ResolutionPolicy{}, fmt.Errorf("%w: preference %q requests both parse kinds", ErrPolicy, value)
		case PreferenceNone:
		default:
			return ResolutionPolicy{}, fmt.Errorf("%w: unknown preference %q", ErrPolicy, part)
		}
	}
	if p.PreferKindA && p.PreferKindB {
		return ResolutionPolicy{}, fmt.Errorf("%w: preference %q requests both parse kinds", ErrPolicy, value)
	}

	if err := p.Validate(); err != nil {
		return ResolutionPolicy{}, err
	}
	return p, nil
}
