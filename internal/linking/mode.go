package linking

import (
	"fmt"
	"strings"
)

// LinkMode selects when the native library is bound.
type LinkMode int

const (
	// RuntimeFirstUse locates and loads the library on the first Bind.
	RuntimeFirstUse LinkMode = iota
	// BuildTime uses a path fixed when the binary was built and never
	// consults the locator.
	BuildTime
)

func (m LinkMode) String() string {
	switch m {
	case BuildTime:
		return "build"
	default:
		return "runtime"
	}
}

// ParseLinkMode accepts "runtime" (the default for an empty string) and
// "build", plus a few spellings seen in build scripts.
func ParseLinkMode(s string) (LinkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "runtime", "runtime-linking", "first-use":
		return RuntimeFirstUse, nil
	case "build", "build-time", "dynamic-linking":
		return BuildTime, nil
	default:
		return RuntimeFirstUse, fmt.Errorf("unknown link mode %q (want runtime or build)", s)
	}
}

// MarshalText lets config files and JSON reports carry the mode by name.
func (m LinkMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *LinkMode) UnmarshalText(b []byte) error {
	v, err := ParseLinkMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// State is the binder lifecycle position.
type State int

const (
	StateUnbound State = iota
	StateLoading
	StateBound
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateLoading:
		return "loading"
	case StateBound:
		return "bound"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
