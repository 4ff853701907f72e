package finder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLibraryNotFound matches every *NotFoundError.
	ErrLibraryNotFound = errors.New("library not found")
	// ErrPluginsXMLNotFound is returned when no plugins.xml can be located.
	ErrPluginsXMLNotFound = errors.New("plugins.xml not found")
)

// NotFoundError reports an exhausted search. Probed lists every directory
// that was tested, in probe order.
type NotFoundError struct {
	Name   string
	File   string
	Probed []Candidate
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "library %s (%s) not found", e.Name, e.File)
	if len(e.Probed) == 0 {
		b.WriteString("; no candidate directories (set ")
		b.WriteString(EnvInstallDir)
		b.WriteString(")")
		return b.String()
	}
	b.WriteString("; searched:")
	for _, c := range e.Probed {
		fmt.Fprintf(&b, "\n  [%s] %s", c.Source, c.Dir)
	}
	return b.String()
}

func (e *NotFoundError) Is(target error) bool { return target == ErrLibraryNotFound }

// Dirs returns just the probed directories.
func (e *NotFoundError) Dirs() []string {
	out := make([]string, 0, len(e.Probed))
	for _, c := range e.Probed {
		out = append(out, c.Dir)
	}
	return out
}

// IsNotFound reports whether err is (or wraps) a failed library search.
func IsNotFound(err error) bool { return errors.Is(err, ErrLibraryNotFound) }
