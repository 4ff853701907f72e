package linking

import (
	"errors"
	"fmt"

	"ovlink/internal/finder"
)

var (
	// ErrLibraryNotFound matches a failed locator search (*finder.NotFoundError).
	ErrLibraryNotFound = finder.ErrLibraryNotFound
	// ErrLoadFailed matches every *LoadError.
	ErrLoadFailed = errors.New("library load failed")
	// ErrSymbolNotFound matches every *SymbolError.
	ErrSymbolNotFound = errors.New("required symbol not found")
	// ErrUnbound is returned when a Library is used after it was closed.
	ErrUnbound = errors.New("library used after unbind")
	// ErrLinkSkipped is returned by every bind when linking is disabled.
	ErrLinkSkipped = errors.New("native linking disabled for this build")
)

// LoadError reports an OS loader failure. Diagnostic is the loader's message
// verbatim (dlerror on unix, the Win32 error text on Windows).
type LoadError struct {
	Path       string
	Diagnostic string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Path, e.Diagnostic)
}

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailed }

// SymbolError names the first manifest entry missing from a loaded image.
type SymbolError struct {
	Name string
	Path string
}

func (e *SymbolError) Error() string {
	if e.Path == "" {
		return "symbol " + e.Name + " not found"
	}
	return fmt.Sprintf("symbol %s not found in %s", e.Name, e.Path)
}

func (e *SymbolError) Is(target error) bool { return target == ErrSymbolNotFound }

// IsNotFound reports whether err comes from an exhausted library search.
func IsNotFound(err error) bool { return errors.Is(err, ErrLibraryNotFound) }

// IsLoadFailed reports whether err is an OS loader failure.
func IsLoadFailed(err error) bool { return errors.Is(err, ErrLoadFailed) }

// IsSymbolNotFound reports whether err names a missing entry point.
func IsSymbolNotFound(err error) bool { return errors.Is(err, ErrSymbolNotFound) }

// IsUnbound reports whether err signals use of a released handle.
func IsUnbound(err error) bool { return errors.Is(err, ErrUnbound) }
