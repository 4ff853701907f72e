//go:build !windows && !((darwin || freebsd || linux) && (amd64 || arm64))

package linking

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("dynamic loading is not supported on " + runtime.GOOS + "/" + runtime.GOARCH)

type systemLoader struct{}

func (systemLoader) Open(string) (uintptr, error)        { return 0, errUnsupported }
func (systemLoader) Sym(uintptr, string) (uintptr, error) { return 0, errUnsupported }
func (systemLoader) Close(uintptr) error                  { return nil }
func (systemLoader) Call(uintptr, ...uintptr) uintptr     { return 0 }
