package borr

import (
	"strconv"
	"strings"

	"borr/internal/textutil"
)

// Unset marks a version component that was never parsed.
const Unset = ^uint64(0)

// Version is a three-part language file version (MAJOR.MINOR.REVISION).
// The zero value is not meaningful; use UnsetVersion or ParseVersion.
type Version struct {
	major    uint64
	minor    uint64
	revision uint64
}

// UnsetVersion returns a version with every component unset.
func UnsetVersion() Version {
	return Version{major: Unset, minor: Unset, revision: Unset}
}

// ParseVersion parses a dotted version string with an optional leading "v".
// Missing or non-numeric components stay Unset and anything past the third
// component is ignored.
func ParseVersion(s string) Version {
	v := UnsetVersion()

	s = textutil.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	if s == "" {
		return v
	}

	parts := [3]*uint64{&v.major, &v.minor, &v.revision}
	for i, component := range strings.SplitN(s, ".", len(parts)+1) {
		if i >= len(parts) {
			break
		}
		n, err := strconv.ParseUint(textutil.TrimSpace(component), 10, 64)
		if err != nil || n == Unset {
			continue
		}
		*parts[i] = n
	}

	return v
}

func (v Version) Major() uint64    { return v.major }
func (v Version) Minor() uint64    { return v.minor }
func (v Version) Revision() uint64 { return v.revision }

// IsSet reports whether all three components were parsed.
func (v Version) IsSet() bool {
	return v.major != Unset && v.minor != Unset && v.revision != Unset
}

// String renders the version as vMAJOR.MINOR.REVISION with "?" for unset
// components.
func (v Version) String() string {
	var sb strings.Builder
	sb.WriteString("v")
	for i, n := range []uint64{v.major, v.minor, v.revision} {
		if i > 0 {
			sb.WriteString(".")
		}
		if n == Unset {
			sb.WriteString("?")
			continue
		}
		sb.WriteString(strconv.FormatUint(n, 10))
	}
	return sb.String()
}
